package domain

import (
	"context"
	"time"
)

// Question image constraints.
const (
	MaxImageFileSize = 15000000
	ImageFilePrefix  = "images/"
	QuestionOptions  = 4
)

// ImageContentTypes lists the accepted question image types.
var ImageContentTypes = []string{"image/png", "image/jpeg"}

// Question is a multiple-choice question. Answer is the index of the correct option.
// swagger:model Question
type Question struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Answer    int      `json:"answer"`
	ImageName *string  `json:"image_name"`
	ImageURL  *string  `json:"image_url"`
}

// Activity is a quiz made of questions.
// swagger:model Activity
type Activity struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Subject   Subject    `json:"subject"`
	Type      Level      `json:"type"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// QuestionInput is one submitted question. Image names an image already attached
// to the activity; NewImage is a freshly uploaded file. Both may be empty.
type QuestionInput struct {
	Question string
	Options  []string
	Answer   int
	Image    string
	NewImage *Upload
}

// ActivityInput carries the fields of an activity create or update.
type ActivityInput struct {
	Name      string
	Subject   Subject
	Type      Level
	Questions []QuestionInput
}

// ActivityRepository defines the interface for activity storage.
type ActivityRepository interface {
	Create(ctx context.Context, a *Activity) error
	GetByID(ctx context.Context, id string) (*Activity, error)
	// List returns all activities ordered by created_at DESC.
	List(ctx context.Context) ([]*Activity, error)
	Update(ctx context.Context, a *Activity) error
	Delete(ctx context.Context, id string) error
}

// ActivityService defines the business logic for activities.
type ActivityService interface {
	List(ctx context.Context) ([]*Activity, error)
	GetByID(ctx context.Context, id string) (*Activity, error)
	Create(ctx context.Context, in ActivityInput) (*Activity, error)
	Update(ctx context.Context, id string, in ActivityInput) (*Activity, error)
	Delete(ctx context.Context, id string) error
}
