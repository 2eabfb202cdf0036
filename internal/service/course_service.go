package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"study-buddy/backend/internal/dto"
	"study-buddy/backend/internal/model"
	"study-buddy/backend/internal/repository"
	pkgerrors "study-buddy/backend/pkg/errors"
	"study-buddy/backend/pkg/validate"
)

// ── 课程模块业务错误 ──

var (
	ErrInvalidCourseID = pkgerrors.InvalidID("course")
	ErrCourseNotFound  = pkgerrors.NotFound("Course")
)

// CourseService 课程业务接口
type CourseService interface {
	List(ctx context.Context) ([]model.Course, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	Create(ctx context.Context, fields dto.Fields) (*model.Course, error)
	Update(ctx context.Context, id string, fields dto.Fields) (*model.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo      *repository.Repository
	sanitizer *validate.Sanitizer
	logger    *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, sanitizer *validate.Sanitizer, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, sanitizer: sanitizer, logger: logger}
}

var courseFields = fieldSet{
	rules: []fieldRule{
		lengthString("courseName", 2, 200),
		optionalString("courseDescription"),
		{
			key:     "courseSchedule",
			kind:    kindArray,
			typeMsg: "courseSchedule must be a non-empty array",
			check: func(v any) error {
				if !validate.IsNonEmptyArray(v) {
					return pkgerrors.Validation("courseSchedule must be a non-empty array")
				}
				return nil
			},
		},
		optionalString("instructorName"),
		optionalString("subject"),
		dateString("startDate"),
		dateString("endDate"),
		ownerID(),
	},
	required: func(f dto.Fields) bool {
		return f.Truthy("courseName") && f.Truthy("startDate") && f.Truthy("endDate")
	},
	requiredMsg: "courseName, startDate, and endDate are required",
	cross: []func(bson.M) error{
		checkCourseDates,
		checkCourseSchedule,
	},
}

// checkCourseDates 两个日期都出现时 endDate 须严格晚于 startDate
// 合法的 YYYY-MM-DD 字符串按字典序比较即为时间先后
func checkCourseDates(values bson.M) error {
	start, hasStart := values["startDate"].(string)
	end, hasEnd := values["endDate"].(string)
	if hasStart && hasEnd && start >= end {
		return pkgerrors.Validation("endDate must be after startDate")
	}
	return nil
}

// checkCourseSchedule 课程表中每一项须为 Monday..Sunday，通过后转为 []string 存储
func checkCourseSchedule(values bson.M) error {
	raw, ok := values["courseSchedule"].([]any)
	if !ok {
		return nil
	}
	days := make([]string, 0, len(raw))
	for _, item := range raw {
		day, isString := item.(string)
		if !isString || !validate.IsWeekday(day) {
			return pkgerrors.Validationf("Invalid day in courseSchedule: %v", item)
		}
		days = append(days, day)
	}
	values["courseSchedule"] = days
	return nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	return courses, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	oid, err := parseObjectID(id, ErrInvalidCourseID)
	if err != nil {
		return nil, err
	}

	course, err := s.repo.Course.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	return course, nil
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, fields dto.Fields) (*model.Course, error) {
	values, err := courseFields.apply(fields, true, s.sanitizer)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		CourseName:        stringValue(values, "courseName"),
		CourseDescription: optionalStringValue(values, "courseDescription"),
		InstructorName:    optionalStringValue(values, "instructorName"),
		Subject:           optionalStringValue(values, "subject"),
		StartDate:         stringValue(values, "startDate"),
		EndDate:           stringValue(values, "endDate"),
		UserID:            optionalStringValue(values, "userId"),
	}
	if days, ok := values["courseSchedule"].([]string); ok {
		course.CourseSchedule = days
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}

	return course, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, fields dto.Fields) (*model.Course, error) {
	oid, err := parseObjectID(id, ErrInvalidCourseID)
	if err != nil {
		return nil, err
	}

	set, err := courseFields.apply(fields, false, s.sanitizer)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, pkgerrors.ErrEmptyUpdate
	}

	matched, err := s.repo.Course.UpdateFields(ctx, oid, set)
	if err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}
	if !matched {
		return nil, ErrCourseNotFound
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, ErrInvalidCourseID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Course.Delete(ctx, oid)
	if err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.Internal(err)
	}
	if !deleted {
		return ErrCourseNotFound
	}
	return nil
}
