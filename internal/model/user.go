package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User 用户文档，对应 users 集合
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name"          json:"name"`
	EmailAddress string             `bson:"emailAddress"  json:"emailAddress"`
}

// CollectionName 指定集合名
func (User) CollectionName() string { return CollectionUsers }
