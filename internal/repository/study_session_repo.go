package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"study-buddy/backend/internal/model"
)

// StudySessionRepository 学习记录数据访问接口
type StudySessionRepository interface {
	List(ctx context.Context) ([]model.StudySession, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.StudySession, error)
	Create(ctx context.Context, session *model.StudySession) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type studySessionRepo struct {
	c collection[model.StudySession]
}

// NewStudySessionRepo 创建 StudySessionRepository 实例
func NewStudySessionRepo(db *mongo.Database) StudySessionRepository {
	return &studySessionRepo{c: newCollection[model.StudySession](db)}
}

func (r *studySessionRepo) List(ctx context.Context) ([]model.StudySession, error) {
	return r.c.find(ctx, bson.M{})
}

func (r *studySessionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.StudySession, error) {
	return r.c.findByID(ctx, id)
}

func (r *studySessionRepo) Create(ctx context.Context, session *model.StudySession) error {
	session.ID = primitive.NewObjectID()
	return r.c.insert(ctx, session)
}

func (r *studySessionRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	return r.c.updateFields(ctx, id, set)
}

func (r *studySessionRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.c.deleteByID(ctx, id)
}
