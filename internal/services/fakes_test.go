package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"schooladmin/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

const testTimeout = 5 * time.Second

// fakeFeed records published changes.
type fakeFeed struct {
	changes []domain.Change
}

func (f *fakeFeed) Publish(c domain.Change) { f.changes = append(f.changes, c) }

func (f *fakeFeed) Subscribe(string, func(domain.Change)) func() { return func() {} }

// fakeStore records stored keys and returns predictable URLs.
type fakeStore struct {
	puts map[string]string
	err  error
}

func newFakeStore() *fakeStore { return &fakeStore{puts: make(map[string]string)} }

func (f *fakeStore) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.puts[key] = string(b)
	return "http://files.test/files/" + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	delete(f.puts, key)
	return nil
}

// fakeStudentRepo is an in-memory StudentRepository for tests.
type fakeStudentRepo struct {
	byID   map[string]*domain.Student
	order  []string
	nextID int
	err    error
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{byID: make(map[string]*domain.Student), nextID: 1}
}

func (f *fakeStudentRepo) Create(_ context.Context, s *domain.Student) error {
	if f.err != nil {
		return f.err
	}
	s.ID = fmt.Sprintf("st-%d", f.nextID)
	f.nextID++
	f.byID[s.ID] = s
	f.order = append([]string{s.ID}, f.order...)
	return nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id string) (*domain.Student, error) {
	if s, ok := f.byID[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStudentRepo) List(context.Context) ([]*domain.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Student
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeStudentRepo) Update(_ context.Context, s *domain.Student) error {
	if _, ok := f.byID[s.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[s.ID] = s
	return nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// fakeLessonRepo is an in-memory LessonRepository for tests.
type fakeLessonRepo struct {
	byID   map[string]*domain.Lesson
	nextID int
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{byID: make(map[string]*domain.Lesson), nextID: 1}
}

func (f *fakeLessonRepo) Create(_ context.Context, l *domain.Lesson) error {
	l.ID = fmt.Sprintf("ls-%d", f.nextID)
	f.nextID++
	f.byID[l.ID] = l
	return nil
}

func (f *fakeLessonRepo) GetByID(_ context.Context, id string) (*domain.Lesson, error) {
	if l, ok := f.byID[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLessonRepo) List(context.Context) ([]*domain.Lesson, error) {
	var out []*domain.Lesson
	for _, l := range f.byID {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLessonRepo) Update(_ context.Context, l *domain.Lesson) error {
	if _, ok := f.byID[l.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[l.ID] = l
	return nil
}

func (f *fakeLessonRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeActivityRepo is an in-memory ActivityRepository for tests.
type fakeActivityRepo struct {
	byID   map[string]*domain.Activity
	nextID int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{byID: make(map[string]*domain.Activity), nextID: 1}
}

func (f *fakeActivityRepo) Create(_ context.Context, a *domain.Activity) error {
	a.ID = fmt.Sprintf("ac-%d", f.nextID)
	f.nextID++
	f.byID[a.ID] = a
	return nil
}

func (f *fakeActivityRepo) GetByID(_ context.Context, id string) (*domain.Activity, error) {
	if a, ok := f.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeActivityRepo) List(context.Context) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeActivityRepo) Update(_ context.Context, a *domain.Activity) error {
	if _, ok := f.byID[a.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[a.ID] = a
	return nil
}

func (f *fakeActivityRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeScoreRepo is an in-memory ScoreRepository for tests.
type fakeScoreRepo struct {
	scores []*domain.Score
}

func (f *fakeScoreRepo) Create(_ context.Context, s *domain.Score) error {
	s.ID = fmt.Sprintf("sc-%d", len(f.scores)+1)
	f.scores = append([]*domain.Score{s}, f.scores...)
	return nil
}

func (f *fakeScoreRepo) List(context.Context) ([]*domain.Score, error) {
	return f.scores, nil
}

// fakeReportRenderer writes one line per score.
type fakeReportRenderer struct {
	err error
}

func (f *fakeReportRenderer) Render(w io.Writer, scores []*domain.Score, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	for _, s := range scores {
		fmt.Fprintf(w, "%s:%d\n", s.StudentName, s.Score)
	}
	return nil
}
