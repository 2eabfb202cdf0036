package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"study-buddy/backend/internal/dto"
	"study-buddy/backend/internal/model"
	pkgerrors "study-buddy/backend/pkg/errors"
)

// ── 测试辅助 ──

func setupTestTaskService() (TaskService, *mockTaskRepo) {
	repo, m := newMockRepository()
	return NewTaskService(repo, testSanitizer, testLogger), m.task
}

func assertValidation(t *testing.T, err error, wantMsg string) {
	t.Helper()
	if !pkgerrors.IsKind(err, pkgerrors.KindValidation) {
		t.Fatalf("期望校验错误，实际: %v", err)
	}
	if _, msg := pkgerrors.StatusOf(err); msg != wantMsg {
		t.Errorf("期望消息 %q，实际 %q", wantMsg, msg)
	}
}

// ── Create 测试 ──

func TestTaskService_Create_Success(t *testing.T) {
	svc, taskRepo := setupTestTaskService()

	task, err := svc.Create(context.Background(), dto.Fields{
		"courseId":        "10",
		"taskDescription": "  Linked list assignment  ",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if task.ID.IsZero() {
		t.Error("应分配 ID")
	}
	if task.TaskDescription != "Linked list assignment" {
		t.Errorf("taskDescription 应去除首尾空白，实际 %q", task.TaskDescription)
	}
	if task.TaskDifficultyRating != nil || task.TaskTimeEstimate != nil || task.UserID != nil {
		t.Error("未提供的可选字段应保持为空")
	}

	stored, err := svc.GetByID(context.Background(), task.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if !reflect.DeepEqual(stored, task) {
		t.Errorf("往返结果不一致: %+v vs %+v", stored, task)
	}
	if taskRepo.writes != 1 {
		t.Errorf("期望写入 1 次，实际 %d", taskRepo.writes)
	}
}

func TestTaskService_Create_AllFields(t *testing.T) {
	svc, _ := setupTestTaskService()

	task, err := svc.Create(context.Background(), dto.Fields{
		"courseId":             "10",
		"taskDescription":      "Problem set 3",
		"taskDifficultyRating": float64(4),
		"taskTimeEstimate":     120.0,
		"taskTimeActual":       float64(0),
		"userId":               "u-1",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if *task.TaskDifficultyRating != 4 || *task.TaskTimeEstimate != 120 || *task.TaskTimeActual != 0 || *task.UserID != "u-1" {
		t.Errorf("字段未正确保存: %+v", task)
	}
}

func TestTaskService_Create_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		fields  dto.Fields
		wantMsg string
	}{
		{"缺少 courseId", dto.Fields{"taskDescription": "Read"}, "courseId and taskDescription are required"},
		{"空 taskDescription", dto.Fields{"courseId": "10", "taskDescription": ""}, "courseId and taskDescription are required"},
		{"courseId 非字符串", dto.Fields{"courseId": 10.0, "taskDescription": "Read"}, "courseId must be a non-empty string"},
		{"courseId 仅空白", dto.Fields{"courseId": "   ", "taskDescription": "Read"}, "courseId must be a non-empty string"},
		{"taskDescription 非字符串", dto.Fields{"courseId": "10", "taskDescription": true}, "taskDescription must be a string"},
		{"taskDescription 过短", dto.Fields{"courseId": "10", "taskDescription": "ab"}, "taskDescription must be between 3 and 500 characters"},
		{"评分非整数", dto.Fields{"courseId": "10", "taskDescription": "Read", "taskDifficultyRating": 2.5}, "taskDifficultyRating must be an integer between 1 and 5"},
		{"评分越界", dto.Fields{"courseId": "10", "taskDescription": "Read", "taskDifficultyRating": 6.0}, "taskDifficultyRating must be an integer between 1 and 5"},
		{"预计耗时为 0", dto.Fields{"courseId": "10", "taskDescription": "Read", "taskTimeEstimate": 0.0}, "taskTimeEstimate must be a positive number (minutes)"},
		{"预计耗时超一周", dto.Fields{"courseId": "10", "taskDescription": "Read", "taskTimeEstimate": 10081.0}, "taskTimeEstimate cannot exceed 10080 minutes (1 week)"},
		{"实际耗时为负", dto.Fields{"courseId": "10", "taskDescription": "Read", "taskTimeActual": -1.0}, "taskTimeActual must be a non-negative number (minutes)"},
		{"实际耗时为字符串", dto.Fields{"courseId": "10", "taskDescription": "Read", "taskTimeActual": "30"}, "taskTimeActual must be a non-negative number (minutes)"},
		{"userId 非字符串", dto.Fields{"courseId": "10", "taskDescription": "Read", "userId": 7.0}, "userId must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, taskRepo := setupTestTaskService()
			_, err := svc.Create(context.Background(), tt.fields)
			assertValidation(t, err, tt.wantMsg)
			if taskRepo.writes != 0 {
				t.Error("校验失败时不应写入")
			}
		})
	}
}

func TestTaskService_Create_TypeCheckedBeforeRange(t *testing.T) {
	svc, _ := setupTestTaskService()

	// taskDescription 过短（范围错误），userId 类型错误：类型校验先于范围校验
	_, err := svc.Create(context.Background(), dto.Fields{
		"courseId":        "10",
		"taskDescription": "ab",
		"userId":          false,
	})
	assertValidation(t, err, "userId must be a string")
}

func TestTaskService_Create_LengthCountsCharacters(t *testing.T) {
	svc, _ := setupTestTaskService()

	if _, err := svc.Create(context.Background(), dto.Fields{"courseId": "10", "taskDescription": "读书会"}); err != nil {
		t.Errorf("3 个字符应通过: %v", err)
	}
}

// ── GetByID / List 测试 ──

func TestTaskService_GetByID_InvalidAndMissing(t *testing.T) {
	svc, _ := setupTestTaskService()

	_, err := svc.GetByID(context.Background(), "abc")
	if !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("期望 ErrInvalidTaskID，实际: %v", err)
	}
	if _, msg := pkgerrors.StatusOf(err); msg != "Invalid task ID" {
		t.Errorf("消息不符: %q", msg)
	}

	_, err = svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
	if status, msg := pkgerrors.StatusOf(err); status != 404 || msg != "Task not found" {
		t.Errorf("期望 404 Task not found，实际 %d %q", status, msg)
	}
}

func TestTaskService_ListFilters(t *testing.T) {
	svc, taskRepo := setupTestTaskService()
	taskRepo.seed(model.Task{CourseID: "c1", TaskDescription: "one", UserID: strPtr("u1")})
	taskRepo.seed(model.Task{CourseID: "c1", TaskDescription: "two"})
	taskRepo.seed(model.Task{CourseID: "c2", TaskDescription: "three", UserID: strPtr("u1")})

	all, err := svc.List(context.Background(), &dto.ListFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("期望 3 个任务，实际 %d (%v)", len(all), err)
	}

	mine, _ := svc.List(context.Background(), &dto.ListFilter{UserID: "u1"})
	if len(mine) != 2 {
		t.Errorf("按 userId 过滤期望 2 个，实际 %d", len(mine))
	}

	byCourse, _ := svc.ListByCourse(context.Background(), "c1")
	if len(byCourse) != 2 {
		t.Errorf("按课程过滤期望 2 个，实际 %d", len(byCourse))
	}

	none, err := svc.ListByCourse(context.Background(), "not-an-object-id")
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("不存在的课程应返回空列表，实际 %v (%v)", none, err)
	}
}

func TestTaskService_List_StoreFailure(t *testing.T) {
	svc, taskRepo := setupTestTaskService()
	taskRepo.err = errors.New("connection reset")

	_, err := svc.List(context.Background(), nil)
	if status, msg := pkgerrors.StatusOf(err); status != 500 || msg != "Internal server error" {
		t.Errorf("存储错误期望 500，实际 %d %q", status, msg)
	}
}

// ── Update 测试 ──

func TestTaskService_Update_PartialMerge(t *testing.T) {
	svc, taskRepo := setupTestTaskService()
	existing := taskRepo.seed(model.Task{
		CourseID:         "c1",
		TaskDescription:  "Write essay",
		TaskTimeEstimate: floatPtr(60),
	})

	updated, err := svc.Update(context.Background(), existing.ID.Hex(), dto.Fields{
		"taskTimeActual": 75.0,
		"unknownField":   "ignored",
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.TaskDescription != "Write essay" || *updated.TaskTimeEstimate != 60 {
		t.Errorf("未提供的字段不应改变: %+v", updated)
	}
	if updated.TaskTimeActual == nil || *updated.TaskTimeActual != 75 {
		t.Errorf("taskTimeActual 应更新为 75: %+v", updated)
	}
}

func TestTaskService_Update_Errors(t *testing.T) {
	svc, taskRepo := setupTestTaskService()
	existing := taskRepo.seed(model.Task{CourseID: "c1", TaskDescription: "Write essay"})

	if _, err := svc.Update(context.Background(), "abc", dto.Fields{"taskDescription": "New"}); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("期望 ErrInvalidTaskID，实际: %v", err)
	}

	_, err := svc.Update(context.Background(), existing.ID.Hex(), dto.Fields{"foo": "bar"})
	if !errors.Is(err, pkgerrors.ErrEmptyUpdate) {
		t.Errorf("期望 ErrEmptyUpdate，实际: %v", err)
	}
	if taskRepo.writes != 0 {
		t.Error("空更新不应写入")
	}

	_, err = svc.Update(context.Background(), existing.ID.Hex(), dto.Fields{"taskDescription": "ab"})
	assertValidation(t, err, "taskDescription must be between 3 and 500 characters")

	_, err = svc.Update(context.Background(), primitive.NewObjectID().Hex(), dto.Fields{"taskDescription": "Valid text"})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestTaskService_Delete_Idempotence(t *testing.T) {
	svc, taskRepo := setupTestTaskService()
	existing := taskRepo.seed(model.Task{CourseID: "c1", TaskDescription: "Write essay"})

	if err := svc.Delete(context.Background(), existing.ID.Hex()); err != nil {
		t.Fatalf("首次删除应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), existing.ID.Hex()); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("重复删除期望 ErrTaskNotFound，实际: %v", err)
	}
	if err := svc.Delete(context.Background(), "xyz"); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("期望 ErrInvalidTaskID，实际: %v", err)
	}
}
