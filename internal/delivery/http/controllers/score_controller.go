package controllers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"schooladmin/internal/delivery/http/helpers"
	"schooladmin/internal/domain"
)

// RecordScoreRequest is the request body for POST /scores.
type RecordScoreRequest struct {
	StudentName string `json:"student_name"`
	QuizName    string `json:"quiz_name"`
	Score       int    `json:"score"`
	Subject     string `json:"subject"`
	Type        string `json:"type"`
}

// Validate implements Validator.
func (s RecordScoreRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.StudentName) == "" {
		errs = append(errs, "student_name is required")
	}
	if strings.TrimSpace(s.QuizName) == "" {
		errs = append(errs, "quiz_name is required")
	}
	if s.Score < 0 {
		errs = append(errs, "score cannot be negative")
	}
	if !domain.Subject(s.Subject).Valid() {
		errs = append(errs, "subject must be one of english, filipino, math")
	}
	if !domain.Level(s.Type).Valid() {
		errs = append(errs, "type must be one of 1st, 2nd, 3rd, 4th, advanced")
	}
	return errs
}

// ScorePageSuccessResponse is the success response envelope for GET /scores (200).
type ScorePageSuccessResponse struct {
	Data  helpers.Page[*domain.Score] `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// ScoreSuccessResponse is the success response envelope for POST /scores (201).
type ScoreSuccessResponse struct {
	Data  *domain.Score     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ScoreController handles quiz results.
type ScoreController struct {
	Logger  *slog.Logger
	Service domain.ScoreService
}

// NewScoreController creates a ScoreController with the given logger and service.
func NewScoreController(logger *slog.Logger, svc domain.ScoreService) *ScoreController {
	return &ScoreController{
		Logger:  logger,
		Service: svc,
	}
}

// ListScores godoc
// @Summary List scores
// @Description Returns one page (10 per page) of recorded scores, newest first.
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} controllers.ScorePageSuccessResponse "data contains items, pagination and nav"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /scores [get]
func (c *ScoreController) ListScores(w http.ResponseWriter, r *http.Request) {
	scores, err := c.Service.List(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(scores, helpers.ParsePage(r)))
}

// RecordScore godoc
// @Summary Record a quiz score
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecordScoreRequest true "Score"
// @Success 201 {object} controllers.ScoreSuccessResponse "data contains the recorded score"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /scores [post]
func (c *ScoreController) RecordScore(w http.ResponseWriter, r *http.Request) {
	var req RecordScoreRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	score := &domain.Score{
		StudentName: req.StudentName,
		QuizName:    req.QuizName,
		Score:       req.Score,
		Subject:     domain.Subject(req.Subject),
		Type:        domain.Level(req.Type),
	}
	if err := c.Service.Record(r.Context(), score); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, score)
}

// ScoresReport godoc
// @Summary Download the scores report
// @Description Renders every recorded score as a PDF table.
// @Tags scores
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file "PDF report"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /scores/report [get]
func (c *ScoreController) ScoresReport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := c.Service.Report(r.Context(), &buf); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	name := fmt.Sprintf("scores-%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
