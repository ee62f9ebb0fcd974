package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin/internal/delivery/http/helpers"
	"schooladmin/internal/domain"
)

func TestScoreController_RecordScore(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		recordErr      error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "recorded",
			body:       `{"student_name":"Ana","quiz_name":"Quiz 1","score":7,"subject":"math","type":"1st"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "negative score",
			body:           `{"student_name":"Ana","quiz_name":"Quiz 1","score":-1,"subject":"math","type":"1st"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "score cannot be negative",
		},
		{
			name:           "unknown subject",
			body:           `{"student_name":"Ana","quiz_name":"Quiz 1","score":1,"subject":"science","type":"1st"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "subject",
		},
		{
			name:           "missing names",
			body:           `{"score":1,"subject":"math","type":"1st"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "student_name is required; quiz_name is required",
		},
		{
			name:       "store fails",
			body:       `{"student_name":"Ana","quiz_name":"Quiz 1","score":7,"subject":"math","type":"1st"}`,
			recordErr:  assert.AnError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeScoreService{recordErr: tt.recordErr}
			ctrl := NewScoreController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.RecordScore(rr, httptest.NewRequest(http.MethodPost, "/scores", bytes.NewBufferString(tt.body)))

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusCreated {
				var s domain.Score
				decodeData(t, envelope, &s)
				assert.NotEmpty(t, s.ID)
				assert.Equal(t, 7, s.Score)
				assert.Equal(t, domain.LevelFirst, fake.recorded.Type)
				return
			}
			require.NotNil(t, envelope.Error)
			if tt.wantBodySubstr != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestScoreController_ListScores(t *testing.T) {
	fake := &fakeScoreService{scores: []*domain.Score{{ID: "s1", StudentName: "Ana", Score: 9}}}
	ctrl := NewScoreController(testLogger, fake)
	rr := httptest.NewRecorder()

	ctrl.ListScores(rr, httptest.NewRequest(http.MethodGet, "/scores", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var page helpers.Page[*domain.Score]
	decodeData(t, decodeEnvelope(t, rr), &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ana", page.Items[0].StudentName)
}

func TestScoreController_ScoresReport(t *testing.T) {
	t.Run("pdf attachment", func(t *testing.T) {
		report := "%PDF-1.3 scores"
		ctrl := NewScoreController(testLogger, &fakeScoreService{report: report})
		rr := httptest.NewRecorder()

		ctrl.ScoresReport(rr, httptest.NewRequest(http.MethodGet, "/scores/report", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.Regexp(t, `^attachment; filename="scores-\d{4}-\d{2}-\d{2}\.pdf"$`, rr.Header().Get("Content-Disposition"))
		assert.Equal(t, strconv.Itoa(len(report)), rr.Header().Get("Content-Length"))
		assert.Equal(t, report, rr.Body.String())
	})

	t.Run("render fails", func(t *testing.T) {
		ctrl := NewScoreController(testLogger, &fakeScoreService{reportErr: assert.AnError})
		rr := httptest.NewRecorder()

		ctrl.ScoresReport(rr, httptest.NewRequest(http.MethodGet, "/scores/report", nil))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	})
}
