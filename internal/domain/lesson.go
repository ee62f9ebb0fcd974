package domain

import (
	"context"
	"time"
)

// Lesson file constraints.
const (
	LessonContentType = "application/pdf"
	MaxLessonFileSize = 5000000
	LessonFilePrefix  = "pdfs/"
)

// Lesson is an uploaded PDF lesson.
// swagger:model Lesson
type Lesson struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   Subject   `json:"subject"`
	Type      Level     `json:"type"`
	FileName  string    `json:"file_name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// LessonInput carries the fields of a lesson create or update.
type LessonInput struct {
	Name    string
	Subject Subject
	Type    Level
	File    *Upload
}

// LessonRepository defines the interface for lesson storage.
type LessonRepository interface {
	Create(ctx context.Context, l *Lesson) error
	GetByID(ctx context.Context, id string) (*Lesson, error)
	// List returns all lessons ordered by created_at DESC.
	List(ctx context.Context) ([]*Lesson, error)
	Update(ctx context.Context, l *Lesson) error
	Delete(ctx context.Context, id string) error
}

// LessonService defines the business logic for lessons.
type LessonService interface {
	List(ctx context.Context) ([]*Lesson, error)
	Create(ctx context.Context, in LessonInput) (*Lesson, error)
	Update(ctx context.Context, id string, in LessonInput) (*Lesson, error)
	Delete(ctx context.Context, id string) error
}
