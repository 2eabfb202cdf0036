package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"study-buddy/backend/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	List(ctx context.Context) ([]model.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Course, error)
	Create(ctx context.Context, course *model.Course) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type courseRepo struct {
	c collection[model.Course]
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *mongo.Database) CourseRepository {
	return &courseRepo{c: newCollection[model.Course](db)}
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	return r.c.find(ctx, bson.M{})
}

func (r *courseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Course, error) {
	return r.c.findByID(ctx, id)
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	course.ID = primitive.NewObjectID()
	return r.c.insert(ctx, course)
}

func (r *courseRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	return r.c.updateFields(ctx, id, set)
}

func (r *courseRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.c.deleteByID(ctx, id)
}
