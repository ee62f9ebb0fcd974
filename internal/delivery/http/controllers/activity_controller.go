package controllers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"schooladmin/internal/delivery/http/helpers"
	"schooladmin/internal/domain"
)

// maxActivityBody caps an activity form, which may carry one image per question.
const maxActivityBody = 100 << 20

// QuestionForm is one entry of the JSON "questions" form field. Image names an
// image already attached to the activity; a new image is sent as the file field
// image_<index>.
type QuestionForm struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
	Image    string   `json:"image"`
}

// ActivitySummary is a list row of GET /activities.
// swagger:model ActivitySummary
type ActivitySummary struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Subject       domain.Subject `json:"subject"`
	Type          domain.Level   `json:"type"`
	QuestionCount int            `json:"question_count"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ActivityPageSuccessResponse is the success response envelope for GET /activities (200).
type ActivityPageSuccessResponse struct {
	Data  helpers.Page[ActivitySummary] `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// ActivitySuccessResponse is the success response envelope for a single activity.
type ActivitySuccessResponse struct {
	Data  *domain.Activity  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ActivityController handles quizzes.
type ActivityController struct {
	Logger  *slog.Logger
	Service domain.ActivityService
}

// NewActivityController creates an ActivityController with the given logger and service.
func NewActivityController(logger *slog.Logger, svc domain.ActivityService) *ActivityController {
	return &ActivityController{
		Logger:  logger,
		Service: svc,
	}
}

func summarize(a *domain.Activity, _ int) ActivitySummary {
	return ActivitySummary{
		ID:            a.ID,
		Name:          a.Name,
		Subject:       a.Subject,
		Type:          a.Type,
		QuestionCount: len(a.Questions),
		CreatedAt:     a.CreatedAt,
	}
}

// ListActivities godoc
// @Summary List activities
// @Description Returns one page (10 per page) of activities, newest first, with their question count.
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} controllers.ActivityPageSuccessResponse "data contains items, pagination and nav"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities [get]
func (c *ActivityController) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := c.Service.List(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	rows := lo.Map(activities, summarize)
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(rows, helpers.ParsePage(r)))
}

// GetActivity godoc
// @Summary Get an activity
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID (UUID)"
// @Success 200 {object} controllers.ActivitySuccessResponse "data contains the activity with its questions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{id} [get]
func (c *ActivityController) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	activity, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activity)
}

// readActivityForm parses the multipart activity form. Uploaded images must be
// released with closeQuestionImages.
func (c *ActivityController) readActivityForm(w http.ResponseWriter, r *http.Request) (domain.ActivityInput, bool) {
	if !helpers.ParseMultipart(w, r, maxActivityBody) {
		return domain.ActivityInput{}, false
	}
	var forms []QuestionForm
	if err := json.Unmarshal([]byte(r.FormValue("questions")), &forms); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "questions must be a JSON array: "+err.Error())
		return domain.ActivityInput{}, false
	}
	in := domain.ActivityInput{
		Name:      r.FormValue("name"),
		Subject:   domain.Subject(strings.TrimSpace(r.FormValue("subject"))),
		Type:      domain.Level(strings.TrimSpace(r.FormValue("type"))),
		Questions: make([]domain.QuestionInput, 0, len(forms)),
	}
	for i, f := range forms {
		image, err := helpers.FormUpload(r, fmt.Sprintf("image_%d", i))
		if err != nil {
			closeQuestionImages(in)
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, fmt.Sprintf("invalid image for question %d: %v", i+1, err))
			return domain.ActivityInput{}, false
		}
		in.Questions = append(in.Questions, domain.QuestionInput{
			Question: f.Question,
			Options:  f.Options,
			Answer:   f.Answer,
			Image:    strings.TrimSpace(f.Image),
			NewImage: image,
		})
	}
	return in, true
}

func closeQuestionImages(in domain.ActivityInput) {
	for _, q := range in.Questions {
		helpers.CloseUpload(q.NewImage)
	}
}

// CreateActivity godoc
// @Summary Create an activity
// @Description Create a quiz. questions is a JSON array of {question, options[4], answer, image}; a new image for question i is sent as file field image_i (png or jpeg, at most 15,000,000 bytes).
// @Tags activities
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Activity name"
// @Param subject formData string true "english, filipino or math"
// @Param type formData string true "1st, 2nd, 3rd, 4th or advanced"
// @Param questions formData string true "JSON array of questions"
// @Success 201 {object} controllers.ActivitySuccessResponse "data contains the created activity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities [post]
func (c *ActivityController) CreateActivity(w http.ResponseWriter, r *http.Request) {
	in, ok := c.readActivityForm(w, r)
	if !ok {
		return
	}
	defer closeQuestionImages(in)
	activity, err := c.Service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, activity)
}

// UpdateActivity godoc
// @Summary Replace an activity
// @Description Replace an activity. A question whose image names an image already used by the activity keeps that image without re-uploading.
// @Tags activities
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID (UUID)"
// @Param name formData string true "Activity name"
// @Param subject formData string true "english, filipino or math"
// @Param type formData string true "1st, 2nd, 3rd, 4th or advanced"
// @Param questions formData string true "JSON array of questions"
// @Success 200 {object} controllers.ActivitySuccessResponse "data contains the updated activity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{id} [put]
func (c *ActivityController) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	in, ok := c.readActivityForm(w, r)
	if !ok {
		return
	}
	defer closeQuestionImages(in)
	activity, err := c.Service.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activity)
}

// DeleteActivity godoc
// @Summary Delete an activity
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID (UUID)"
// @Success 200 {object} controllers.DeleteSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{id} [delete]
func (c *ActivityController) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}
