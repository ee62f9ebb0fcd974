package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"schooladmin/internal/delivery/http/helpers"
	"schooladmin/internal/domain"
)

// formOverhead is the room left for non-file fields in a multipart body.
const formOverhead = 1 << 20

// LessonPageSuccessResponse is the success response envelope for GET /lessons (200).
type LessonPageSuccessResponse struct {
	Data  helpers.Page[*domain.Lesson] `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// LessonSuccessResponse is the success response envelope for a single lesson.
type LessonSuccessResponse struct {
	Data  *domain.Lesson    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LessonController handles lesson PDFs.
type LessonController struct {
	Logger  *slog.Logger
	Service domain.LessonService
}

// NewLessonController creates a LessonController with the given logger and service.
func NewLessonController(logger *slog.Logger, svc domain.LessonService) *LessonController {
	return &LessonController{
		Logger:  logger,
		Service: svc,
	}
}

// ListLessons godoc
// @Summary List lessons
// @Description Returns one page (10 per page) of lessons, newest first.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} controllers.LessonPageSuccessResponse "data contains items, pagination and nav"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /lessons [get]
func (c *LessonController) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := c.Service.List(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(lessons, helpers.ParsePage(r)))
}

// readLessonForm parses the multipart lesson form. The returned upload must be
// closed with helpers.CloseUpload.
func (c *LessonController) readLessonForm(w http.ResponseWriter, r *http.Request) (domain.LessonInput, bool) {
	if !helpers.ParseMultipart(w, r, domain.MaxLessonFileSize+formOverhead) {
		return domain.LessonInput{}, false
	}
	file, err := helpers.FormUpload(r, "file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid file: "+err.Error())
		return domain.LessonInput{}, false
	}
	return domain.LessonInput{
		Name:    r.FormValue("name"),
		Subject: domain.Subject(strings.TrimSpace(r.FormValue("subject"))),
		Type:    domain.Level(strings.TrimSpace(r.FormValue("type"))),
		File:    file,
	}, true
}

// CreateLesson godoc
// @Summary Create a lesson
// @Description Upload a lesson PDF (application/pdf, at most 5,000,000 bytes). The file is stored under pdfs/<file name>.
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Lesson name"
// @Param subject formData string true "english, filipino or math"
// @Param type formData string true "1st, 2nd, 3rd, 4th or advanced"
// @Param file formData file true "Lesson PDF"
// @Success 201 {object} controllers.LessonSuccessResponse "data contains the created lesson"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /lessons [post]
func (c *LessonController) CreateLesson(w http.ResponseWriter, r *http.Request) {
	in, ok := c.readLessonForm(w, r)
	if !ok {
		return
	}
	defer helpers.CloseUpload(in.File)
	lesson, err := c.Service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, lesson)
}

// UpdateLesson godoc
// @Summary Replace a lesson
// @Description Replace name, subject, type and PDF of a lesson. created_at is kept.
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lesson ID (UUID)"
// @Param name formData string true "Lesson name"
// @Param subject formData string true "english, filipino or math"
// @Param type formData string true "1st, 2nd, 3rd, 4th or advanced"
// @Param file formData file true "Lesson PDF"
// @Success 200 {object} controllers.LessonSuccessResponse "data contains the updated lesson"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /lessons/{id} [put]
func (c *LessonController) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	in, ok := c.readLessonForm(w, r)
	if !ok {
		return
	}
	defer helpers.CloseUpload(in.File)
	lesson, err := c.Service.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lesson ID (UUID)"
// @Success 200 {object} controllers.DeleteSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /lessons/{id} [delete]
func (c *LessonController) DeleteLesson(w http.ResponseWriter, r *http.Request) {
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
