package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"schooladmin/internal/delivery/http/helpers"
	"schooladmin/internal/domain"
)

// StudentRequest is the request body for POST /students and PUT /students/{id}.
type StudentRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (s StudentRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// StudentPageSuccessResponse is the success response envelope for GET /students (200).
type StudentPageSuccessResponse struct {
	Data  helpers.Page[*domain.Student] `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// StudentSuccessResponse is the success response envelope for a single student.
type StudentSuccessResponse struct {
	Data  *domain.Student   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// StudentController handles the student roster.
type StudentController struct {
	Logger  *slog.Logger
	Service domain.StudentService
}

// NewStudentController creates a StudentController with the given logger and service.
func NewStudentController(logger *slog.Logger, svc domain.StudentService) *StudentController {
	return &StudentController{
		Logger:  logger,
		Service: svc,
	}
}

// ListStudents godoc
// @Summary List students
// @Description Returns one page (10 per page) of students, newest first. Non-numeric page defaults to 1; out-of-range pages are empty.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} controllers.StudentPageSuccessResponse "data contains items, pagination and nav"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /students [get]
func (c *StudentController) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := c.Service.List(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(students, helpers.ParsePage(r)))
}

// CreateStudent godoc
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StudentRequest true "Student name"
// @Success 201 {object} controllers.StudentSuccessResponse "data contains the created student"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /students [post]
func (c *StudentController) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req StudentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	student, err := c.Service.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, student)
}

// UpdateStudent godoc
// @Summary Rename a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID (UUID)"
// @Param body body StudentRequest true "Student name"
// @Success 200 {object} controllers.StudentSuccessResponse "data contains the updated student"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	var req StudentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	student, err := c.Service.Update(r.Context(), id, req.Name)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, student)
}

// DeleteStudent godoc
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID (UUID)"
// @Success 200 {object} controllers.DeleteSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(w http.ResponseWriter, r *http.Request) {
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
