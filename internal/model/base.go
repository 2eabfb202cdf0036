package model

// 集合名称，统一使用 snake_case
const (
	CollectionUsers         = "users"
	CollectionCourses       = "courses"
	CollectionStudySessions = "study_sessions"
	CollectionTasks         = "tasks"
)

// Document 可持久化文档的公共约束
type Document interface {
	CollectionName() string
}
