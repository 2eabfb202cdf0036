package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"study-buddy/backend/internal/dto"
	"study-buddy/backend/internal/model"
	"study-buddy/backend/internal/repository"
	pkgerrors "study-buddy/backend/pkg/errors"
	"study-buddy/backend/pkg/validate"
)

// ── 用户模块业务错误 ──

var (
	ErrInvalidUserID = pkgerrors.InvalidID("user")
	ErrUserNotFound  = pkgerrors.NotFound("User")
)

// UserService 用户业务接口
type UserService interface {
	// List filter.UserID 非空时仅返回该用户，格式错误返回 ErrInvalidUserID
	List(ctx context.Context, filter *dto.ListFilter) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, fields dto.Fields) (*model.User, error)
	Update(ctx context.Context, id string, fields dto.Fields) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo      *repository.Repository
	sanitizer *validate.Sanitizer
	logger    *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, sanitizer *validate.Sanitizer, logger *zap.Logger) UserService {
	return &userService{repo: repo, sanitizer: sanitizer, logger: logger}
}

var userFields = fieldSet{
	rules: []fieldRule{
		lengthString("name", 2, 100),
		{
			key:     "emailAddress",
			kind:    kindString,
			typeMsg: "emailAddress must be a string",
			check: func(v any) error {
				if !validate.IsValidEmail(v.(string)) {
					return pkgerrors.Validation("emailAddress must be a valid email address")
				}
				return nil
			},
		},
	},
	required: func(f dto.Fields) bool {
		return f.Truthy("name") && f.Truthy("emailAddress")
	},
	requiredMsg: "name and emailAddress are required",
}

func (s *userService) List(ctx context.Context, filter *dto.ListFilter) ([]model.User, error) {
	var idFilter *primitive.ObjectID
	if filter != nil && filter.UserID != "" {
		oid, err := parseObjectID(filter.UserID, ErrInvalidUserID)
		if err != nil {
			return nil, err
		}
		idFilter = &oid
	}

	users, err := s.repo.User.List(ctx, idFilter)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := parseObjectID(id, ErrInvalidUserID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, fields dto.Fields) (*model.User, error) {
	values, err := userFields.apply(fields, true, s.sanitizer)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         stringValue(values, "name"),
		EmailAddress: stringValue(values, "emailAddress"),
	}

	if err := s.ensureEmailAvailable(ctx, user.EmailAddress, nil); err != nil {
		return nil, err
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// 唯一索引兜底并发创建
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, pkgerrors.ErrDuplicateEmail
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, fields dto.Fields) (*model.User, error) {
	oid, err := parseObjectID(id, ErrInvalidUserID)
	if err != nil {
		return nil, err
	}

	set, err := userFields.apply(fields, false, s.sanitizer)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, pkgerrors.ErrEmptyUpdate
	}

	if email, ok := set["emailAddress"].(string); ok {
		if err := s.ensureEmailAvailable(ctx, email, &oid); err != nil {
			return nil, err
		}
	}

	matched, err := s.repo.User.UpdateFields(ctx, oid, set)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, pkgerrors.ErrDuplicateEmail
		}
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	if !matched {
		return nil, ErrUserNotFound
	}

	return s.GetByID(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, ErrInvalidUserID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.User.Delete(ctx, oid)
	if err != nil {
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.Internal(err)
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

// ensureEmailAvailable 邮箱（清洗后，大小写敏感）不能被其他用户占用
// self 非 nil 时排除该用户自身
func (s *userService) ensureEmailAvailable(ctx context.Context, email string, self *primitive.ObjectID) error {
	existing, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		s.logger.Error("查询邮箱失败", zap.Error(err))
		return pkgerrors.Internal(err)
	}
	if self != nil && existing.ID == *self {
		return nil
	}
	return pkgerrors.ErrDuplicateEmail
}
