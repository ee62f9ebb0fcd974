package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"schooladmin/internal/domain"
)

type activityRepository struct {
	DB *sql.DB
}

// NewActivityRepository returns a domain.ActivityRepository implemented with Postgres.
// Questions are stored as a JSONB array on the activity row.
func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{DB: db}
}

const activityColumns = `id, name, subject, type, questions, created_at`

func scanActivity(row rowScanner) (*domain.Activity, error) {
	a := &domain.Activity{}
	var questions []byte
	if err := row.Scan(&a.ID, &a.Name, &a.Subject, &a.Type, &questions, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &a.Questions); err != nil {
		return nil, fmt.Errorf("decode questions of activity %s: %w", a.ID, err)
	}
	if a.Questions == nil {
		a.Questions = []domain.Question{}
	}
	return a, nil
}

func encodeQuestions(questions []domain.Question) ([]byte, error) {
	if questions == nil {
		questions = []domain.Question{}
	}
	b, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	return b, nil
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	questions, err := encodeQuestions(a.Questions)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO activities (name, subject, type, questions, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, a.Name, a.Subject, a.Type, questions, a.CreatedAt).Scan(&a.ID)
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	a, err := scanActivity(r.DB.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *activityRepository) List(ctx context.Context) ([]*domain.Activity, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) Update(ctx context.Context, a *domain.Activity) error {
	questions, err := encodeQuestions(a.Questions)
	if err != nil {
		return err
	}
	query := `
		UPDATE activities
		SET name = $1, subject = $2, type = $3, questions = $4
		WHERE id = $5
	`
	result, err := r.DB.ExecContext(ctx, query, a.Name, a.Subject, a.Type, questions, a.ID)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *activityRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}
