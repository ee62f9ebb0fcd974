package postgres

import (
	"context"
	"database/sql"

	"schooladmin/internal/domain"
)

type scoreRepository struct {
	DB *sql.DB
}

// NewScoreRepository returns a domain.ScoreRepository implemented with Postgres.
func NewScoreRepository(db *sql.DB) domain.ScoreRepository {
	return &scoreRepository{DB: db}
}

func (r *scoreRepository) Create(ctx context.Context, s *domain.Score) error {
	query := `
		INSERT INTO scores (student_name, quiz_name, score, subject, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.StudentName, s.QuizName, s.Score, s.Subject, s.Type, s.CreatedAt).Scan(&s.ID)
}

func (r *scoreRepository) List(ctx context.Context) ([]*domain.Score, error) {
	query := `
		SELECT id, student_name, quiz_name, score, subject, type, created_at
		FROM scores
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]*domain.Score, 0)
	for rows.Next() {
		s := &domain.Score{}
		if err := rows.Scan(&s.ID, &s.StudentName, &s.QuizName, &s.Score, &s.Subject, &s.Type, &s.CreatedAt); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}
