package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"schooladmin/internal/domain"
)

type lessonService struct {
	repo           domain.LessonRepository
	store          domain.FileStore
	feed           domain.ChangeFeed
	contextTimeout time.Duration
}

// NewLessonService returns a LessonService that stores lesson PDFs in store.
func NewLessonService(repo domain.LessonRepository, store domain.FileStore, feed domain.ChangeFeed, timeout time.Duration) domain.LessonService {
	return &lessonService{
		repo:           repo,
		store:          store,
		feed:           feed,
		contextTimeout: timeout,
	}
}

func (s *lessonService) List(ctx context.Context) ([]*domain.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	lessons, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	if lessons == nil {
		lessons = []*domain.Lesson{}
	}
	return lessons, nil
}

func validateLessonInput(in *domain.LessonInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalidf("name is required")
	}
	if err := validateClassification(in.Subject, in.Type); err != nil {
		return err
	}
	if in.File == nil {
		return invalidf("file is required")
	}
	return nil
}

// storeFile uploads the lesson PDF and returns its file name and public URL.
func (s *lessonService) storeFile(ctx context.Context, file *domain.Upload) (string, string, error) {
	key, err := uploadKey(file, domain.LessonFilePrefix, domain.MaxLessonFileSize, domain.LessonContentType)
	if err != nil {
		return "", "", err
	}
	url, err := s.store.Put(ctx, key, file.Body, file.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("store lesson file: %w", err)
	}
	return strings.TrimPrefix(key, domain.LessonFilePrefix), url, nil
}

func (s *lessonService) Create(ctx context.Context, in domain.LessonInput) (*domain.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateLessonInput(&in); err != nil {
		return nil, err
	}
	fileName, url, err := s.storeFile(ctx, in.File)
	if err != nil {
		return nil, err
	}
	lesson := &domain.Lesson{
		Name:      in.Name,
		Subject:   in.Subject,
		Type:      in.Type,
		FileName:  fileName,
		URL:       url,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	publish(s.feed, domain.CollectionLessons, domain.ChangeCreated, lesson.ID)
	return lesson, nil
}

func (s *lessonService) Update(ctx context.Context, id string, in domain.LessonInput) (*domain.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateLessonInput(&in); err != nil {
		return nil, err
	}
	lesson, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	fileName, url, err := s.storeFile(ctx, in.File)
	if err != nil {
		return nil, err
	}
	lesson.Name = in.Name
	lesson.Subject = in.Subject
	lesson.Type = in.Type
	lesson.FileName = fileName
	lesson.URL = url
	if err := s.repo.Update(ctx, lesson); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	publish(s.feed, domain.CollectionLessons, domain.ChangeUpdated, lesson.ID)
	return lesson, nil
}

// Delete removes the lesson record. The stored PDF is kept since other lessons
// may point at the same key.
func (s *lessonService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete lesson: %w", err)
	}
	publish(s.feed, domain.CollectionLessons, domain.ChangeDeleted, id)
	return nil
}
