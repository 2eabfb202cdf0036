package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"study-buddy/backend/internal/model"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Course       CourseRepository
	StudySession StudySessionRepository
	Task         TaskRepository

	db *mongo.Database
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Course:       NewCourseRepo(db),
		StudySession: NewStudySessionRepo(db),
		Task:         NewTaskRepo(db),
		db:           db,
	}
}

// Ping 检查数据库连通性
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

// EnsureIndexes 创建查询所需索引
// uniqueEmail 为 true 时在 users.emailAddress 上建唯一索引，由存储层兜底邮箱唯一性
func (r *Repository) EnsureIndexes(ctx context.Context, uniqueEmail bool) error {
	taskIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "courseId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	if _, err := r.db.Collection(model.CollectionTasks).Indexes().CreateMany(ctx, taskIndexes); err != nil {
		return fmt.Errorf("创建 tasks 索引失败: %w", err)
	}

	if uniqueEmail {
		emailIndex := mongo.IndexModel{
			Keys:    bson.D{{Key: "emailAddress", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_emailAddress"),
		}
		if _, err := r.db.Collection(model.CollectionUsers).Indexes().CreateOne(ctx, emailIndex); err != nil {
			return fmt.Errorf("创建 users 唯一索引失败: %w", err)
		}
	}

	return nil
}
