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

// ── 任务模块业务错误 ──

var (
	ErrInvalidTaskID = pkgerrors.InvalidID("task")
	ErrTaskNotFound  = pkgerrors.NotFound("Task")
)

// 任务耗时上限：一周
const maxTaskMinutes = 10080

// TaskService 任务业务接口
type TaskService interface {
	List(ctx context.Context, filter *dto.ListFilter) ([]model.Task, error)
	// ListByCourse courseId 作为普通字符串匹配，不校验格式
	ListByCourse(ctx context.Context, courseID string) ([]model.Task, error)
	GetByID(ctx context.Context, id string) (*model.Task, error)
	Create(ctx context.Context, fields dto.Fields) (*model.Task, error)
	Update(ctx context.Context, id string, fields dto.Fields) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskService struct {
	repo      *repository.Repository
	sanitizer *validate.Sanitizer
	logger    *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, sanitizer *validate.Sanitizer, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, sanitizer: sanitizer, logger: logger}
}

var taskFields = fieldSet{
	rules: []fieldRule{
		nonEmptyString("courseId"),
		lengthString("taskDescription", 3, 500),
		rating("taskDifficultyRating"),
		minutes("taskTimeEstimate", true, maxTaskMinutes, "taskTimeEstimate cannot exceed 10080 minutes (1 week)"),
		minutes("taskTimeActual", false, maxTaskMinutes, "taskTimeActual cannot exceed 10080 minutes (1 week)"),
		ownerID(),
	},
	required: func(f dto.Fields) bool {
		return f.Truthy("courseId") && f.Truthy("taskDescription")
	},
	requiredMsg: "courseId and taskDescription are required",
}

func (s *taskService) List(ctx context.Context, filter *dto.ListFilter) ([]model.Task, error) {
	var f repository.TaskFilter
	if filter != nil {
		f.UserID = filter.UserID
	}
	return s.list(ctx, f)
}

func (s *taskService) ListByCourse(ctx context.Context, courseID string) ([]model.Task, error) {
	return s.list(ctx, repository.TaskFilter{CourseID: courseID})
}

func (s *taskService) list(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	tasks, err := s.repo.Task.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出任务失败",
			zap.String("userId", filter.UserID),
			zap.String("courseId", filter.CourseID),
			zap.Error(err),
		)
		return nil, pkgerrors.Internal(err)
	}
	return tasks, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*model.Task, error) {
	oid, err := parseObjectID(id, ErrInvalidTaskID)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.Task.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, fields dto.Fields) (*model.Task, error) {
	values, err := taskFields.apply(fields, true, s.sanitizer)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		CourseID:             stringValue(values, "courseId"),
		TaskDescription:      stringValue(values, "taskDescription"),
		TaskDifficultyRating: optionalIntValue(values, "taskDifficultyRating"),
		TaskTimeEstimate:     optionalFloatValue(values, "taskTimeEstimate"),
		TaskTimeActual:       optionalFloatValue(values, "taskTimeActual"),
		UserID:               optionalStringValue(values, "userId"),
	}

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}

	return task, nil
}

func (s *taskService) Update(ctx context.Context, id string, fields dto.Fields) (*model.Task, error) {
	oid, err := parseObjectID(id, ErrInvalidTaskID)
	if err != nil {
		return nil, err
	}

	set, err := taskFields.apply(fields, false, s.sanitizer)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, pkgerrors.ErrEmptyUpdate
	}

	matched, err := s.repo.Task.UpdateFields(ctx, oid, set)
	if err != nil {
		s.logger.Error("更新任务失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	if !matched {
		return nil, ErrTaskNotFound
	}

	return s.GetByID(ctx, id)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, ErrInvalidTaskID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Task.Delete(ctx, oid)
	if err != nil {
		s.logger.Error("删除任务失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.Internal(err)
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}
