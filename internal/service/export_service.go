package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"study-buddy/backend/internal/dto"
	"study-buddy/backend/internal/model"
	"study-buddy/backend/internal/repository"
	pkgerrors "study-buddy/backend/pkg/errors"
	"study-buddy/backend/pkg/validate"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTasks = pkgerrors.New(pkgerrors.KindNotFound, "No tasks to export")
)

// ExportService 导出业务接口
//
// 导出结果以字节返回，由 Handler 层设置下载响应头
type ExportService interface {
	// ExportTasks 将任务导出为 Excel，可按 userId / courseId 过滤
	ExportTasks(ctx context.Context, filter *dto.ExportFilter) (*bytes.Buffer, string, error)
	// CourseCalendar 将课程导出为 iCalendar
	CourseCalendar(ctx context.Context, courseID string) ([]byte, string, error)
}

type exportService struct {
	repo    *repository.Repository
	courses CourseService
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, courses CourseService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, courses: courses, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportTasks 导出任务为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Tasks"
//   - 第 1 行表头，之后每个任务一行
//   - 末行合计预计/实际分钟数

var taskExportHeaders = []string{
	"Task ID", "Course ID", "Description", "Difficulty", "Estimate (min)", "Actual (min)", "User ID",
}

const taskSheet = "Tasks"

func (s *exportService) ExportTasks(ctx context.Context, filter *dto.ExportFilter) (*bytes.Buffer, string, error) {
	var f repository.TaskFilter
	if filter != nil {
		f = repository.TaskFilter{UserID: filter.UserID, CourseID: filter.CourseID}
	}

	tasks, err := s.repo.Task.List(ctx, f)
	if err != nil {
		s.logger.Error("查询导出任务失败", zap.Error(err))
		return nil, "", pkgerrors.Internal(err)
	}
	if len(tasks) == 0 {
		return nil, "", ErrExportNoTasks
	}

	xf := excelize.NewFile()
	defer xf.Close()

	if err := xf.SetSheetName("Sheet1", taskSheet); err != nil {
		return nil, "", s.exportFailed(err)
	}

	headerStyle, err := xf.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, "", s.exportFailed(err)
	}

	for i, h := range taskExportHeaders {
		if err := xf.SetCellValue(taskSheet, cell(colName(i), 1), h); err != nil {
			return nil, "", s.exportFailed(err)
		}
	}
	_ = xf.SetCellStyle(taskSheet, "A1", cell(colName(len(taskExportHeaders)-1), 1), headerStyle)
	_ = xf.SetColWidth(taskSheet, "A", "B", 26)
	_ = xf.SetColWidth(taskSheet, "C", "C", 48)
	_ = xf.SetColWidth(taskSheet, "D", "F", 14)
	_ = xf.SetColWidth(taskSheet, "G", "G", 26)

	var totalEstimate, totalActual float64
	row := 2
	for _, t := range tasks {
		values := []interface{}{
			t.ID.Hex(), t.CourseID, t.TaskDescription,
			intOrBlank(t.TaskDifficultyRating),
			floatOrBlank(t.TaskTimeEstimate),
			floatOrBlank(t.TaskTimeActual),
			stringOrBlank(t.UserID),
		}
		if err := xf.SetSheetRow(taskSheet, cell("A", row), &values); err != nil {
			return nil, "", s.exportFailed(err)
		}
		if t.TaskTimeEstimate != nil {
			totalEstimate += *t.TaskTimeEstimate
		}
		if t.TaskTimeActual != nil {
			totalActual += *t.TaskTimeActual
		}
		row++
	}

	totals := []interface{}{"Total", "", "", "", totalEstimate, totalActual, ""}
	if err := xf.SetSheetRow(taskSheet, cell("A", row), &totals); err != nil {
		return nil, "", s.exportFailed(err)
	}

	buf := new(bytes.Buffer)
	if err := xf.Write(buf); err != nil {
		return nil, "", s.exportFailed(err)
	}

	filename := "tasks.xlsx"
	if f.CourseID != "" {
		filename = fmt.Sprintf("tasks_%s.xlsx", f.CourseID)
	}
	return buf, filename, nil
}

func (s *exportService) exportFailed(err error) error {
	s.logger.Error("生成 Excel 文件失败", zap.Error(err))
	return pkgerrors.Internal(err)
}

// ═══════════════════════════════════════════════════════════
// CourseCalendar 导出课程为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 有课程表时每个上课日生成一个全天重复事件：
//   DTSTART 为 startDate 当天或之后第一个该星期几
//   RRULE:FREQ=WEEKLY;BYDAY=<XX>;UNTIL=<endDate>
// 无课程表时生成一个覆盖 startDate..endDate 的全天事件

var icsWeekdays = map[string]struct {
	day  time.Weekday
	code string
}{
	"Monday":    {time.Monday, "MO"},
	"Tuesday":   {time.Tuesday, "TU"},
	"Wednesday": {time.Wednesday, "WE"},
	"Thursday":  {time.Thursday, "TH"},
	"Friday":    {time.Friday, "FR"},
	"Saturday":  {time.Saturday, "SA"},
	"Sunday":    {time.Sunday, "SU"},
}

func (s *exportService) CourseCalendar(ctx context.Context, courseID string) ([]byte, string, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, "", err
	}

	start, err := time.Parse(validate.DateLayout, course.StartDate)
	if err != nil {
		return nil, "", s.calendarFailed(course, err)
	}
	end, err := time.Parse(validate.DateLayout, course.EndDate)
	if err != nil {
		return nil, "", s.calendarFailed(course, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Study Buddy//Course Calendar//EN")
	cal.SetXWRCalName(course.CourseName)

	uidBase := course.ID.Hex() + "@study-buddy"
	stamp := s.now().UTC()
	description := courseDescription(course)

	if len(course.CourseSchedule) == 0 {
		ev := cal.AddEvent(uidBase)
		ev.SetDtStampTime(stamp)
		ev.SetSummary(course.CourseName)
		if description != "" {
			ev.SetDescription(description)
		}
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1)) // DTEND 不含当天
	} else {
		seen := make(map[string]bool, len(course.CourseSchedule))
		for _, dayName := range course.CourseSchedule {
			wd, ok := icsWeekdays[dayName]
			if !ok || seen[dayName] {
				continue
			}
			seen[dayName] = true

			first := firstWeekdayOnOrAfter(start, wd.day)
			if first.After(end) {
				continue
			}

			ev := cal.AddEvent(fmt.Sprintf("%s-%s", strings.ToLower(wd.code), uidBase))
			ev.SetDtStampTime(stamp)
			ev.SetSummary(course.CourseName)
			if description != "" {
				ev.SetDescription(description)
			}
			ev.SetAllDayStartAt(first)
			ev.SetAllDayEndAt(first.AddDate(0, 0, 1))
			ev.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s", wd.code, end.Format("20060102")))
		}
	}

	filename := fmt.Sprintf("course_%s.ics", course.ID.Hex())
	return []byte(cal.Serialize()), filename, nil
}

func (s *exportService) calendarFailed(course *model.Course, err error) error {
	s.logger.Error("课程日期无法解析", zap.String("course", courseLabel(course)), zap.Error(err))
	return pkgerrors.Internal(err)
}

// ── 辅助函数 ──

func firstWeekdayOnOrAfter(t time.Time, wd time.Weekday) time.Time {
	offset := (int(wd) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}

func courseDescription(c *model.Course) string {
	var parts []string
	if c.CourseDescription != nil && *c.CourseDescription != "" {
		parts = append(parts, *c.CourseDescription)
	}
	if c.Subject != nil && *c.Subject != "" {
		parts = append(parts, "Subject: "+*c.Subject)
	}
	if c.InstructorName != nil && *c.InstructorName != "" {
		parts = append(parts, "Instructor: "+*c.InstructorName)
	}
	return strings.Join(parts, "\n")
}

// courseLabel 日志使用的课程名称
func courseLabel(c *model.Course) string {
	if c.CourseName != "" {
		return c.CourseName
	}
	return "course-" + c.ID.Hex()
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func intOrBlank(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func floatOrBlank(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func stringOrBlank(v *string) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
