package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// StudySession 学习记录文档，对应 study_sessions 集合
// Length 单位为分钟
type StudySession struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"                json:"_id"`
	CourseID           string             `bson:"courseId"                     json:"courseId"`
	Length             float64            `bson:"length"                       json:"length"`
	Description        *string            `bson:"description,omitempty"        json:"description,omitempty"`
	StudySessionRating *int               `bson:"studySessionRating,omitempty" json:"studySessionRating,omitempty"`
	UserID             *string            `bson:"userId,omitempty"             json:"userId,omitempty"`
}

// CollectionName 指定集合名
func (StudySession) CollectionName() string { return CollectionStudySessions }
