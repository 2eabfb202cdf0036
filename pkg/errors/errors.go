package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别，决定对外的 HTTP 状态码
type Kind string

const (
	KindValidation     Kind = "validation"
	KindInvalidID      Kind = "invalid_id"
	KindEmptyUpdate    Kind = "empty_update"
	KindNotFound       Kind = "not_found"
	KindDuplicateEmail Kind = "duplicate_email"
	KindUnauthorized   Kind = "unauthorized"
	KindInternal       Kind = "internal"
)

const internalMessage = "Internal server error"

var kindStatus = map[Kind]int{
	KindValidation:     http.StatusBadRequest,
	KindInvalidID:      http.StatusBadRequest,
	KindEmptyUpdate:    http.StatusBadRequest,
	KindNotFound:       http.StatusNotFound,
	KindDuplicateEmail: http.StatusConflict,
	KindUnauthorized:   http.StatusUnauthorized,
	KindInternal:       http.StatusInternalServerError,
}

// AppError 携带 (类别, HTTP 状态码, 对外消息) 的业务错误
// Err 为内部原因，仅用于日志，不会写入响应
type AppError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// New 按类别创建错误，状态码由类别决定
func New(kind Kind, message string) *AppError {
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &AppError{Kind: kind, Status: status, Message: message}
}

// ── 常用构造 ──

var (
	ErrEmptyUpdate    = New(KindEmptyUpdate, "No valid fields to update")
	ErrDuplicateEmail = New(KindDuplicateEmail, "A user with this emailAddress already exists")
)

// Validation 400 字段校验失败
func Validation(message string) *AppError {
	return New(KindValidation, message)
}

// Validationf 400 字段校验失败（格式化消息）
func Validationf(format string, args ...any) *AppError {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

// InvalidID 400 标识符格式错误，resource 为小写资源名（如 "task"）
func InvalidID(resource string) *AppError {
	return New(KindInvalidID, fmt.Sprintf("Invalid %s ID", resource))
}

// NotFound 404 资源不存在，resource 为对外展示名（如 "Task"）
func NotFound(resource string) *AppError {
	return New(KindNotFound, resource+" not found")
}

// Unauthorized 401 未认证
func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, message)
}

// Internal 500 包装存储层或未知错误
func Internal(err error) *AppError {
	e := New(KindInternal, internalMessage)
	e.Err = err
	return e
}

// StatusOf 将任意错误翻译为 HTTP 状态码与对外消息
// 仅当 AppError 的状态码落在 [400,600) 时原样使用，其余一律 500
func StatusOf(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status >= 400 && appErr.Status < 600 {
		if appErr.Status >= 500 {
			return appErr.Status, internalMessage
		}
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, internalMessage
}

// IsKind 判断错误链中是否存在指定类别的 AppError
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
