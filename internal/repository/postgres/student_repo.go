package postgres

import (
	"context"
	"database/sql"
	"errors"

	"schooladmin/internal/domain"
)

type studentRepository struct {
	DB *sql.DB
}

// NewStudentRepository returns a domain.StudentRepository implemented with Postgres.
func NewStudentRepository(db *sql.DB) domain.StudentRepository {
	return &studentRepository{DB: db}
}

func (r *studentRepository) Create(ctx context.Context, s *domain.Student) error {
	query := `
		INSERT INTO students (name, name_input, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.Name, s.NameInput, s.CreatedAt).Scan(&s.ID)
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	query := `
		SELECT id, name, name_input, created_at
		FROM students
		WHERE id = $1
	`
	s := &domain.Student{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.NameInput, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *studentRepository) List(ctx context.Context) ([]*domain.Student, error) {
	query := `
		SELECT id, name, name_input, created_at
		FROM students
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]*domain.Student, 0)
	for rows.Next() {
		s := &domain.Student{}
		if err := rows.Scan(&s.ID, &s.Name, &s.NameInput, &s.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) Update(ctx context.Context, s *domain.Student) error {
	query := `
		UPDATE students
		SET name = $1, name_input = $2
		WHERE id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, s.Name, s.NameInput, s.ID)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// expectOneRow maps a write that touched no rows to domain.ErrNotFound.
func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
