package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"study-buddy/backend/internal/model"
)

// ErrDuplicateKey 写入违反唯一索引
var ErrDuplicateKey = errors.New("duplicate key")

// collection 单个集合上的通用查询原语
// 未找到统一返回 mongo.ErrNoDocuments，列表为空时返回非 nil 空切片
type collection[T model.Document] struct {
	coll *mongo.Collection
}

func newCollection[T model.Document](db *mongo.Database) collection[T] {
	var zero T
	return collection[T]{coll: db.Collection(zero.CollectionName())}
}

func (c collection[T]) find(ctx context.Context, filter bson.M) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = make([]T, 0)
	}
	return docs, nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c collection[T]) findByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return translateWriteError(err)
}

// updateFields 以 $set 覆盖给定字段，返回是否命中文档
func (c collection[T]) updateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, translateWriteError(err)
	}
	return res.MatchedCount > 0, nil
}

func (c collection[T]) deleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func translateWriteError(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}
