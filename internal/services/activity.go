package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"schooladmin/internal/domain"
)

type activityService struct {
	repo           domain.ActivityRepository
	store          domain.FileStore
	feed           domain.ChangeFeed
	contextTimeout time.Duration
}

// NewActivityService returns an ActivityService that stores question images in store.
func NewActivityService(repo domain.ActivityRepository, store domain.FileStore, feed domain.ChangeFeed, timeout time.Duration) domain.ActivityService {
	return &activityService{
		repo:           repo,
		store:          store,
		feed:           feed,
		contextTimeout: timeout,
	}
}

func (s *activityService) List(ctx context.Context) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}
	return activities, nil
}

func (s *activityService) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return activity, nil
}

func validateActivityInput(in *domain.ActivityInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalidf("name is required")
	}
	if err := validateClassification(in.Subject, in.Type); err != nil {
		return err
	}
	if len(in.Questions) == 0 {
		return invalidf("at least one question is required")
	}
	for i := range in.Questions {
		q := &in.Questions[i]
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			return invalidf("question %d: question is required", i+1)
		}
		if len(q.Options) != domain.QuestionOptions {
			return invalidf("question %d: exactly %d options are required", i+1, domain.QuestionOptions)
		}
		if lo.SomeBy(q.Options, func(o string) bool { return strings.TrimSpace(o) == "" }) {
			return invalidf("question %d: options cannot be empty", i+1)
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return invalidf("question %d: answer must be between 0 and %d", i+1, len(q.Options)-1)
		}
	}
	return nil
}

// buildQuestions resolves each input's image. A new upload wins; otherwise an
// image name already used by previous is reused with its URL; otherwise the
// question has no image.
func (s *activityService) buildQuestions(ctx context.Context, inputs []domain.QuestionInput, previous []domain.Question) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(inputs))
	for i, in := range inputs {
		q := domain.Question{
			Question: in.Question,
			Options:  in.Options,
			Answer:   in.Answer,
		}
		switch {
		case in.NewImage != nil:
			key, err := uploadKey(in.NewImage, domain.ImageFilePrefix, domain.MaxImageFileSize, domain.ImageContentTypes...)
			if err != nil {
				return nil, fmt.Errorf("question %d: %w", i+1, err)
			}
			url, err := s.store.Put(ctx, key, in.NewImage.Body, in.NewImage.ContentType)
			if err != nil {
				return nil, fmt.Errorf("store question image: %w", err)
			}
			name := strings.TrimPrefix(key, domain.ImageFilePrefix)
			q.ImageName, q.ImageURL = &name, &url
		case in.Image != "":
			prev, ok := lo.Find(previous, func(p domain.Question) bool {
				return p.ImageName != nil && *p.ImageName == in.Image
			})
			if ok {
				q.ImageName, q.ImageURL = prev.ImageName, prev.ImageURL
			}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (s *activityService) Create(ctx context.Context, in domain.ActivityInput) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateActivityInput(&in); err != nil {
		return nil, err
	}
	questions, err := s.buildQuestions(ctx, in.Questions, nil)
	if err != nil {
		return nil, err
	}
	activity := &domain.Activity{
		Name:      in.Name,
		Subject:   in.Subject,
		Type:      in.Type,
		Questions: questions,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	publish(s.feed, domain.CollectionActivities, domain.ChangeCreated, activity.ID)
	return activity, nil
}

func (s *activityService) Update(ctx context.Context, id string, in domain.ActivityInput) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateActivityInput(&in); err != nil {
		return nil, err
	}
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	questions, err := s.buildQuestions(ctx, in.Questions, activity.Questions)
	if err != nil {
		return nil, err
	}
	activity.Name = in.Name
	activity.Subject = in.Subject
	activity.Type = in.Type
	activity.Questions = questions
	if err := s.repo.Update(ctx, activity); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update activity: %w", err)
	}
	publish(s.feed, domain.CollectionActivities, domain.ChangeUpdated, activity.ID)
	return activity, nil
}

func (s *activityService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete activity: %w", err)
	}
	publish(s.feed, domain.CollectionActivities, domain.ChangeDeleted, id)
	return nil
}
