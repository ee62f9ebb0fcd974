package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"schooladmin/internal/domain"
)

type studentService struct {
	repo           domain.StudentRepository
	feed           domain.ChangeFeed
	contextTimeout time.Duration
}

// NewStudentService returns a StudentService that publishes every mutation on feed.
func NewStudentService(repo domain.StudentRepository, feed domain.ChangeFeed, timeout time.Duration) domain.StudentService {
	return &studentService{
		repo:           repo,
		feed:           feed,
		contextTimeout: timeout,
	}
}

func (s *studentService) List(ctx context.Context) ([]*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if students == nil {
		students = []*domain.Student{}
	}
	return students, nil
}

func (s *studentService) Create(ctx context.Context, name string) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	student := domain.NewStudent(name, time.Now())
	if student.Name == "" {
		return nil, invalidf("name is required")
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	publish(s.feed, domain.CollectionStudents, domain.ChangeCreated, student.ID)
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id, name string) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	student.Rename(name)
	if student.Name == "" {
		return nil, invalidf("name is required")
	}
	if err := s.repo.Update(ctx, student); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	publish(s.feed, domain.CollectionStudents, domain.ChangeUpdated, student.ID)
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete student: %w", err)
	}
	publish(s.feed, domain.CollectionStudents, domain.ChangeDeleted, id)
	return nil
}
