package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"study-buddy/backend/internal/model"
)

// TaskFilter 任务列表的等值过滤，空字段不参与过滤
type TaskFilter struct {
	UserID   string
	CourseID string
}

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type taskRepo struct {
	c collection[model.Task]
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *mongo.Database) TaskRepository {
	return &taskRepo{c: newCollection[model.Task](db)}
}

func (r *taskRepo) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	q := bson.M{}
	if filter.UserID != "" {
		q["userId"] = filter.UserID
	}
	if filter.CourseID != "" {
		q["courseId"] = filter.CourseID
	}
	return r.c.find(ctx, q)
}

func (r *taskRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Task, error) {
	return r.c.findByID(ctx, id)
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	task.ID = primitive.NewObjectID()
	return r.c.insert(ctx, task)
}

func (r *taskRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	return r.c.updateFields(ctx, id, set)
}

func (r *taskRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.c.deleteByID(ctx, id)
}
