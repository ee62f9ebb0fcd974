package domain

import (
	"context"
	"strings"
	"time"
)

// Student is a learner enrolled in the school.
// swagger:model Student
type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NameInput string    `json:"name_input"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStudent returns a Student with NameInput derived from name. ID is set by the repository on create.
func NewStudent(name string, createdAt time.Time) *Student {
	s := &Student{CreatedAt: createdAt}
	s.Rename(name)
	return s
}

// Rename sets Name and the normalized NameInput the quiz app matches against.
func (s *Student) Rename(name string) {
	s.Name = strings.TrimSpace(name)
	s.NameInput = strings.ToLower(s.Name)
}

// StudentRepository defines the interface for student storage.
type StudentRepository interface {
	Create(ctx context.Context, s *Student) error
	GetByID(ctx context.Context, id string) (*Student, error)
	// List returns all students ordered by created_at DESC.
	List(ctx context.Context) ([]*Student, error)
	Update(ctx context.Context, s *Student) error
	Delete(ctx context.Context, id string) error
}

// StudentService defines the business logic for students.
type StudentService interface {
	List(ctx context.Context) ([]*Student, error)
	Create(ctx context.Context, name string) (*Student, error)
	Update(ctx context.Context, id, name string) (*Student, error)
	Delete(ctx context.Context, id string) error
}
