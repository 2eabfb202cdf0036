package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"study-buddy/backend/internal/dto"
	"study-buddy/backend/internal/model"
	"study-buddy/backend/internal/repository"
	pkgerrors "study-buddy/backend/pkg/errors"
	"study-buddy/backend/pkg/validate"
)

// ── 学习记录模块业务错误 ──

var (
	ErrInvalidStudySessionID = pkgerrors.InvalidID("session")
	ErrStudySessionNotFound  = pkgerrors.NotFound("Study session")
)

// 单次学习时长上限：一天
const maxSessionMinutes = 1440

// StudySessionService 学习记录业务接口
type StudySessionService interface {
	List(ctx context.Context) ([]model.StudySession, error)
	GetByID(ctx context.Context, id string) (*model.StudySession, error)
	Create(ctx context.Context, fields dto.Fields) (*model.StudySession, error)
	Update(ctx context.Context, id string, fields dto.Fields) (*model.StudySession, error)
	Delete(ctx context.Context, id string) error
}

type studySessionService struct {
	repo      *repository.Repository
	sanitizer *validate.Sanitizer
	logger    *zap.Logger
}

// NewStudySessionService 创建 StudySessionService 实例
func NewStudySessionService(repo *repository.Repository, sanitizer *validate.Sanitizer, logger *zap.Logger) StudySessionService {
	return &studySessionService{repo: repo, sanitizer: sanitizer, logger: logger}
}

var studySessionFields = fieldSet{
	rules: []fieldRule{
		nonEmptyString("courseId"),
		minutes("length", true, maxSessionMinutes, "length cannot exceed 1440 minutes (24 hours)"),
		rating("studySessionRating"),
		strictString("description"),
		ownerID(),
	},
	// length 只要求出现，0 交给范围校验报错
	required: func(f dto.Fields) bool {
		return f.Truthy("courseId") && f.Has("length")
	},
	requiredMsg: "courseId and length are required",
}

func (s *studySessionService) List(ctx context.Context) ([]model.StudySession, error) {
	sessions, err := s.repo.StudySession.List(ctx)
	if err != nil {
		s.logger.Error("列出学习记录失败", zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	return sessions, nil
}

func (s *studySessionService) GetByID(ctx context.Context, id string) (*model.StudySession, error) {
	oid, err := parseObjectID(id, ErrInvalidStudySessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.StudySession.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrStudySessionNotFound
		}
		s.logger.Error("查询学习记录失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	return session, nil
}

func (s *studySessionService) Create(ctx context.Context, fields dto.Fields) (*model.StudySession, error) {
	values, err := studySessionFields.apply(fields, true, s.sanitizer)
	if err != nil {
		return nil, err
	}

	session := &model.StudySession{
		CourseID:           stringValue(values, "courseId"),
		Description:        optionalStringValue(values, "description"),
		StudySessionRating: optionalIntValue(values, "studySessionRating"),
		UserID:             optionalStringValue(values, "userId"),
	}
	if length := optionalFloatValue(values, "length"); length != nil {
		session.Length = *length
	}

	if err := s.repo.StudySession.Create(ctx, session); err != nil {
		s.logger.Error("创建学习记录失败", zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}

	return session, nil
}

func (s *studySessionService) Update(ctx context.Context, id string, fields dto.Fields) (*model.StudySession, error) {
	oid, err := parseObjectID(id, ErrInvalidStudySessionID)
	if err != nil {
		return nil, err
	}

	set, err := studySessionFields.apply(fields, false, s.sanitizer)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, pkgerrors.ErrEmptyUpdate
	}

	matched, err := s.repo.StudySession.UpdateFields(ctx, oid, set)
	if err != nil {
		s.logger.Error("更新学习记录失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	if !matched {
		return nil, ErrStudySessionNotFound
	}

	return s.GetByID(ctx, id)
}

func (s *studySessionService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, ErrInvalidStudySessionID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.StudySession.Delete(ctx, oid)
	if err != nil {
		s.logger.Error("删除学习记录失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.Internal(err)
	}
	if !deleted {
		return ErrStudySessionNotFound
	}
	return nil
}
