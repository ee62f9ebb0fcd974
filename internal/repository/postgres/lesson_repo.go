package postgres

import (
	"context"
	"database/sql"
	"errors"

	"schooladmin/internal/domain"
)

type lessonRepository struct {
	DB *sql.DB
}

// NewLessonRepository returns a domain.LessonRepository implemented with Postgres.
func NewLessonRepository(db *sql.DB) domain.LessonRepository {
	return &lessonRepository{DB: db}
}

const lessonColumns = `id, name, subject, type, file_name, url, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLesson(row rowScanner) (*domain.Lesson, error) {
	l := &domain.Lesson{}
	if err := row.Scan(&l.ID, &l.Name, &l.Subject, &l.Type, &l.FileName, &l.URL, &l.CreatedAt); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *lessonRepository) Create(ctx context.Context, l *domain.Lesson) error {
	query := `
		INSERT INTO lessons (name, subject, type, file_name, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, l.Name, l.Subject, l.Type, l.FileName, l.URL, l.CreatedAt).Scan(&l.ID)
}

func (r *lessonRepository) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	l, err := scanLesson(r.DB.QueryRowContext(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *lessonRepository) List(ctx context.Context) ([]*domain.Lesson, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+lessonColumns+` FROM lessons ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lessons := make([]*domain.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepository) Update(ctx context.Context, l *domain.Lesson) error {
	query := `
		UPDATE lessons
		SET name = $1, subject = $2, type = $3, file_name = $4, url = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query, l.Name, l.Subject, l.Type, l.FileName, l.URL, l.ID)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *lessonRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}
