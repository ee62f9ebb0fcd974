package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"schooladmin/internal/domain"
)

type scoreService struct {
	repo           domain.ScoreRepository
	renderer       domain.ScoreReportRenderer
	feed           domain.ChangeFeed
	contextTimeout time.Duration
}

// NewScoreService returns a ScoreService that renders reports with renderer.
func NewScoreService(repo domain.ScoreRepository, renderer domain.ScoreReportRenderer, feed domain.ChangeFeed, timeout time.Duration) domain.ScoreService {
	return &scoreService{
		repo:           repo,
		renderer:       renderer,
		feed:           feed,
		contextTimeout: timeout,
	}
}

func (s *scoreService) List(ctx context.Context) ([]*domain.Score, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	scores, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	if scores == nil {
		scores = []*domain.Score{}
	}
	return scores, nil
}

func (s *scoreService) Record(ctx context.Context, score *domain.Score) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	score.StudentName = strings.TrimSpace(score.StudentName)
	score.QuizName = strings.TrimSpace(score.QuizName)
	if score.StudentName == "" {
		return invalidf("student_name is required")
	}
	if score.QuizName == "" {
		return invalidf("quiz_name is required")
	}
	if score.Score < 0 {
		return invalidf("score cannot be negative")
	}
	if err := validateClassification(score.Subject, score.Type); err != nil {
		return err
	}
	score.CreatedAt = time.Now()
	if err := s.repo.Create(ctx, score); err != nil {
		return fmt.Errorf("record score: %w", err)
	}
	publish(s.feed, domain.CollectionScores, domain.ChangeCreated, score.ID)
	return nil
}

// Report writes every score, newest first, through the report renderer.
func (s *scoreService) Report(ctx context.Context, w io.Writer) error {
	scores, err := s.List(ctx)
	if err != nil {
		return err
	}
	if err := s.renderer.Render(w, scores, time.Now()); err != nil {
		return fmt.Errorf("render score report: %w", err)
	}
	return nil
}
