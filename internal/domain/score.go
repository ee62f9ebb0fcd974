package domain

import (
	"context"
	"io"
	"time"
)

// Score is a quiz result recorded by the student quiz app.
// swagger:model Score
type Score struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	QuizName    string    `json:"quiz_name"`
	Score       int       `json:"score"`
	Subject     Subject   `json:"subject"`
	Type        Level     `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScoreRepository defines the interface for score storage.
type ScoreRepository interface {
	Create(ctx context.Context, s *Score) error
	// List returns all scores ordered by created_at DESC.
	List(ctx context.Context) ([]*Score, error)
}

// ScoreReportRenderer writes a printable report of scores.
type ScoreReportRenderer interface {
	Render(w io.Writer, scores []*Score, generatedAt time.Time) error
}

// ScoreService defines the business logic for scores.
type ScoreService interface {
	List(ctx context.Context) ([]*Score, error)
	Record(ctx context.Context, s *Score) error
	Report(ctx context.Context, w io.Writer) error
}
