package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"schooladmin/internal/domain"
)

type resetCodeRepository struct {
	DB *sql.DB
}

// NewResetCodeRepository returns a domain.ResetCodeRepository implemented with Postgres.
func NewResetCodeRepository(db *sql.DB) domain.ResetCodeRepository {
	return &resetCodeRepository{DB: db}
}

// Create stores a new code for email and drops any earlier ones, so only the
// latest code is ever valid.
func (r *resetCodeRepository) Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	query := `
		WITH cleared AS (
			DELETE FROM password_reset_codes WHERE email = $1
		)
		INSERT INTO password_reset_codes (email, code_hash, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, email, codeHash, expiresAt)
	return err
}

// Consume deletes a matching unexpired code and reports whether one existed.
// A mismatch counts a failed attempt against the live code, and the code is
// dropped once maxAttempts failures have been recorded.
func (r *resetCodeRepository) Consume(ctx context.Context, email, codeHash string, maxAttempts int) (bool, error) {
	consume := `
		DELETE FROM password_reset_codes
		WHERE email = $1 AND code_hash = $2 AND expires_at > NOW() AND attempts < $3
		RETURNING id
	`
	var id string
	err := r.DB.QueryRowContext(ctx, consume, email, codeHash, maxAttempts).Scan(&id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	bump := `
		UPDATE password_reset_codes SET attempts = attempts + 1
		WHERE email = $1 AND expires_at > NOW()
	`
	if _, err := r.DB.ExecContext(ctx, bump, email); err != nil {
		return false, fmt.Errorf("record failed attempt: %w", err)
	}
	purge := `
		DELETE FROM password_reset_codes
		WHERE email = $1 AND (attempts >= $2 OR expires_at <= NOW())
	`
	if _, err := r.DB.ExecContext(ctx, purge, email, maxAttempts); err != nil {
		return false, fmt.Errorf("purge exhausted codes: %w", err)
	}
	return false, nil
}
