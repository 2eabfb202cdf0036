package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"study-buddy/backend/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// List id 非 nil 时仅返回该用户
	List(ctx context.Context, id *primitive.ObjectID) ([]model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// userRepo UserRepository 的 MongoDB 实现
type userRepo struct {
	c collection[model.User]
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *mongo.Database) UserRepository {
	return &userRepo{c: newCollection[model.User](db)}
}

func (r *userRepo) List(ctx context.Context, id *primitive.ObjectID) ([]model.User, error) {
	filter := bson.M{}
	if id != nil {
		filter["_id"] = *id
	}
	return r.c.find(ctx, filter)
}

func (r *userRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.c.findByID(ctx, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.c.findOne(ctx, bson.M{"emailAddress": email})
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = primitive.NewObjectID()
	return r.c.insert(ctx, user)
}

func (r *userRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	return r.c.updateFields(ctx, id, set)
}

func (r *userRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.c.deleteByID(ctx, id)
}
