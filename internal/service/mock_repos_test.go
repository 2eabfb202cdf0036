package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"study-buddy/backend/internal/model"
	"study-buddy/backend/internal/repository"
	"study-buddy/backend/pkg/validate"
)

// ── 内存集合 ──
// 按插入顺序保存文档，UpdateFields 通过 BSON 往返模拟 $set

type memStore[T any] struct {
	docs   []*T
	idOf   func(*T) *primitive.ObjectID
	err    error // 非 nil 时所有操作返回该错误
	writes int
}

func newMemStore[T any](idOf func(*T) *primitive.ObjectID) *memStore[T] {
	return &memStore[T]{idOf: idOf}
}

func (m *memStore[T]) list(match func(*T) bool) ([]T, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]T, 0)
	for _, d := range m.docs {
		if match == nil || match(d) {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *memStore[T]) find(match func(*T) bool) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, d := range m.docs {
		if match(d) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memStore[T]) get(id primitive.ObjectID) (*T, error) {
	return m.find(func(d *T) bool { return *m.idOf(d) == id })
}

func (m *memStore[T]) create(doc *T) error {
	if m.err != nil {
		return m.err
	}
	*m.idOf(doc) = primitive.NewObjectID()
	cp := *doc
	m.docs = append(m.docs, &cp)
	m.writes++
	return nil
}

// seed 直接写入文档，不计入写操作次数
func (m *memStore[T]) seed(doc T) *T {
	if m.idOf(&doc).IsZero() {
		*m.idOf(&doc) = primitive.NewObjectID()
	}
	m.docs = append(m.docs, &doc)
	return &doc
}

func (m *memStore[T]) update(id primitive.ObjectID, set bson.M) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for i, d := range m.docs {
		if *m.idOf(d) != id {
			continue
		}
		raw, err := bson.Marshal(d)
		if err != nil {
			return false, err
		}
		var current bson.M
		if err := bson.Unmarshal(raw, &current); err != nil {
			return false, err
		}
		for k, v := range set {
			current[k] = v
		}
		merged, err := bson.Marshal(current)
		if err != nil {
			return false, err
		}
		var next T
		if err := bson.Unmarshal(merged, &next); err != nil {
			return false, err
		}
		m.docs[i] = &next
		m.writes++
		return true, nil
	}
	return false, nil
}

func (m *memStore[T]) remove(id primitive.ObjectID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for i, d := range m.docs {
		if *m.idOf(d) == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			m.writes++
			return true, nil
		}
	}
	return false, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	*memStore[model.User]
	createErr error // 仅 Create 返回（模拟唯一索引冲突）
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{memStore: newMemStore(func(u *model.User) *primitive.ObjectID { return &u.ID })}
}

func (m *mockUserRepo) List(_ context.Context, id *primitive.ObjectID) ([]model.User, error) {
	return m.list(func(u *model.User) bool { return id == nil || u.ID == *id })
}
func (m *mockUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return m.get(id)
}
func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.EmailAddress == email })
}
func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	return m.create(user)
}
func (m *mockUserRepo) UpdateFields(_ context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	return m.update(id, set)
}
func (m *mockUserRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	return m.remove(id)
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	*memStore[model.Course]
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{memStore: newMemStore(func(c *model.Course) *primitive.ObjectID { return &c.ID })}
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	return m.list(nil)
}
func (m *mockCourseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Course, error) {
	return m.get(id)
}
func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	return m.create(course)
}
func (m *mockCourseRepo) UpdateFields(_ context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	return m.update(id, set)
}
func (m *mockCourseRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	return m.remove(id)
}

// ── Mock StudySessionRepository ──

type mockStudySessionRepo struct {
	*memStore[model.StudySession]
}

func newMockStudySessionRepo() *mockStudySessionRepo {
	return &mockStudySessionRepo{memStore: newMemStore(func(s *model.StudySession) *primitive.ObjectID { return &s.ID })}
}

func (m *mockStudySessionRepo) List(_ context.Context) ([]model.StudySession, error) {
	return m.list(nil)
}
func (m *mockStudySessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.StudySession, error) {
	return m.get(id)
}
func (m *mockStudySessionRepo) Create(_ context.Context, session *model.StudySession) error {
	return m.create(session)
}
func (m *mockStudySessionRepo) UpdateFields(_ context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	return m.update(id, set)
}
func (m *mockStudySessionRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	return m.remove(id)
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	*memStore[model.Task]
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{memStore: newMemStore(func(t *model.Task) *primitive.ObjectID { return &t.ID })}
}

func (m *mockTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	return m.list(func(t *model.Task) bool {
		if filter.CourseID != "" && t.CourseID != filter.CourseID {
			return false
		}
		if filter.UserID != "" && (t.UserID == nil || *t.UserID != filter.UserID) {
			return false
		}
		return true
	})
}
func (m *mockTaskRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Task, error) {
	return m.get(id)
}
func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	return m.create(task)
}
func (m *mockTaskRepo) UpdateFields(_ context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	return m.update(id, set)
}
func (m *mockTaskRepo) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	return m.remove(id)
}

// ── 测试辅助 ──

type mockRepos struct {
	user    *mockUserRepo
	course  *mockCourseRepo
	session *mockStudySessionRepo
	task    *mockTaskRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:    newMockUserRepo(),
		course:  newMockCourseRepo(),
		session: newMockStudySessionRepo(),
		task:    newMockTaskRepo(),
	}
	repo := &repository.Repository{
		User:         m.user,
		Course:       m.course,
		StudySession: m.session,
		Task:         m.task,
	}
	return repo, m
}

var testSanitizer = validate.NewSanitizer(false)

var testLogger = zap.NewNop()

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
