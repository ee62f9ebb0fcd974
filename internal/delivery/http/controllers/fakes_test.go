package controllers

import (
	"context"
	"io"
	"sync"
	"time"

	"schooladmin/internal/domain"
)

var fixedTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type fakeStudentService struct {
	students  []*domain.Student
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	lastName  string
	lastID    string
}

func (f *fakeStudentService) List(ctx context.Context) ([]*domain.Student, error) {
	return f.students, f.listErr
}

func (f *fakeStudentService) Create(ctx context.Context, name string) (*domain.Student, error) {
	f.lastName = name
	if f.createErr != nil {
		return nil, f.createErr
	}
	s := domain.NewStudent(name, fixedTime)
	s.ID = "11111111-1111-1111-1111-111111111111"
	return s, nil
}

func (f *fakeStudentService) Update(ctx context.Context, id, name string) (*domain.Student, error) {
	f.lastID, f.lastName = id, name
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	s := domain.NewStudent(name, fixedTime)
	s.ID = id
	return s, nil
}

func (f *fakeStudentService) Delete(ctx context.Context, id string) error {
	f.lastID = id
	return f.deleteErr
}

// fakeLessonService records the input it was called with, including the bytes of the file.
type fakeLessonService struct {
	lessons   []*domain.Lesson
	err       error
	lastID    string
	lastInput domain.LessonInput
	fileBody  string
}

func (f *fakeLessonService) List(ctx context.Context) ([]*domain.Lesson, error) {
	return f.lessons, f.err
}

func (f *fakeLessonService) capture(in domain.LessonInput) (*domain.Lesson, error) {
	f.lastInput = in
	if in.File != nil {
		b, _ := io.ReadAll(in.File.Body)
		f.fileBody = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Lesson{
		ID:        "22222222-2222-2222-2222-222222222222",
		Name:      in.Name,
		Subject:   in.Subject,
		Type:      in.Type,
		FileName:  in.File.Name,
		URL:       "http://files/pdfs/" + in.File.Name,
		CreatedAt: fixedTime,
	}, nil
}

func (f *fakeLessonService) Create(ctx context.Context, in domain.LessonInput) (*domain.Lesson, error) {
	return f.capture(in)
}

func (f *fakeLessonService) Update(ctx context.Context, id string, in domain.LessonInput) (*domain.Lesson, error) {
	f.lastID = id
	return f.capture(in)
}

func (f *fakeLessonService) Delete(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

type fakeActivityService struct {
	activities []*domain.Activity
	err        error
	lastID     string
	lastInput  domain.ActivityInput
	imageBody  map[int]string
}

func (f *fakeActivityService) List(ctx context.Context) ([]*domain.Activity, error) {
	return f.activities, f.err
}

func (f *fakeActivityService) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeActivityService) capture(in domain.ActivityInput) (*domain.Activity, error) {
	f.lastInput = in
	f.imageBody = map[int]string{}
	for i, q := range in.Questions {
		if q.NewImage != nil {
			b, _ := io.ReadAll(q.NewImage.Body)
			f.imageBody[i] = string(b)
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	a := &domain.Activity{
		ID:        "33333333-3333-3333-3333-333333333333",
		Name:      in.Name,
		Subject:   in.Subject,
		Type:      in.Type,
		CreatedAt: fixedTime,
	}
	for _, q := range in.Questions {
		a.Questions = append(a.Questions, domain.Question{Question: q.Question, Options: q.Options, Answer: q.Answer})
	}
	return a, nil
}

func (f *fakeActivityService) Create(ctx context.Context, in domain.ActivityInput) (*domain.Activity, error) {
	return f.capture(in)
}

func (f *fakeActivityService) Update(ctx context.Context, id string, in domain.ActivityInput) (*domain.Activity, error) {
	f.lastID = id
	return f.capture(in)
}

func (f *fakeActivityService) Delete(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

// fakeScoreService is safe for the concurrent reads a stream test performs.
type fakeScoreService struct {
	mu        sync.Mutex
	scores    []*domain.Score
	listErr   error
	recordErr error
	report    string
	reportErr error
	recorded  *domain.Score
}

func (f *fakeScoreService) List(ctx context.Context) ([]*domain.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Score(nil), f.scores...), f.listErr
}

func (f *fakeScoreService) add(s *domain.Score) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores = append([]*domain.Score{s}, f.scores...)
}

// keepNewest drops all but the n most recently added scores.
func (f *fakeScoreService) keepNewest(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores = f.scores[:n]
}

func (f *fakeScoreService) Record(ctx context.Context, s *domain.Score) error {
	f.recorded = s
	if f.recordErr != nil {
		return f.recordErr
	}
	s.ID = "44444444-4444-4444-4444-444444444444"
	s.CreatedAt = fixedTime
	return nil
}

func (f *fakeScoreService) Report(ctx context.Context, w io.Writer) error {
	if f.reportErr != nil {
		return f.reportErr
	}
	_, err := io.WriteString(w, f.report)
	return err
}
