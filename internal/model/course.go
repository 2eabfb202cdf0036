package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Course 课程文档，对应 courses 集合
// StartDate/EndDate 以 YYYY-MM-DD 字符串存储
type Course struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"               json:"_id"`
	CourseName        string             `bson:"courseName"                  json:"courseName"`
	CourseDescription *string            `bson:"courseDescription,omitempty" json:"courseDescription,omitempty"`
	CourseSchedule    []string           `bson:"courseSchedule,omitempty"    json:"courseSchedule,omitempty"`
	InstructorName    *string            `bson:"instructorName,omitempty"    json:"instructorName,omitempty"`
	Subject           *string            `bson:"subject,omitempty"           json:"subject,omitempty"`
	StartDate         string             `bson:"startDate"                   json:"startDate"`
	EndDate           string             `bson:"endDate"                     json:"endDate"`
	UserID            *string            `bson:"userId,omitempty"            json:"userId,omitempty"`
}

// CollectionName 指定集合名
func (Course) CollectionName() string { return CollectionCourses }
