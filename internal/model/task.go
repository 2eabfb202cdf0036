package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Task 任务文档，对应 tasks 集合
// 时间字段单位为分钟
type Task struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"                  json:"_id"`
	CourseID             string             `bson:"courseId"                       json:"courseId"`
	TaskDescription      string             `bson:"taskDescription"                json:"taskDescription"`
	TaskDifficultyRating *int               `bson:"taskDifficultyRating,omitempty" json:"taskDifficultyRating,omitempty"`
	TaskTimeEstimate     *float64           `bson:"taskTimeEstimate,omitempty"     json:"taskTimeEstimate,omitempty"`
	TaskTimeActual       *float64           `bson:"taskTimeActual,omitempty"       json:"taskTimeActual,omitempty"`
	UserID               *string            `bson:"userId,omitempty"               json:"userId,omitempty"`
}

// CollectionName 指定集合名
func (Task) CollectionName() string { return CollectionTasks }
