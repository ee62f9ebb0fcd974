package report

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin/internal/domain"
)

func TestScoresPDF_Render(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	renderer := NewScoresPDF("Quiz Scores", nil)

	tests := []struct {
		name   string
		scores []*domain.Score
	}{
		{name: "empty", scores: nil},
		{
			name: "one row",
			scores: []*domain.Score{
				{ID: "1", StudentName: "Juan dela Cruz", QuizName: "Fractions", Score: 8, Subject: domain.SubjectMath, Type: domain.LevelFirst, CreatedAt: now},
			},
		},
		{name: "many pages", scores: manyScores(120, now)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, renderer.Render(&buf, tt.scores, now))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output should be a PDF")
		})
	}
}

func TestFit(t *testing.T) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 10)

	assert.Equal(t, "short", fit(pdf, "short", 50))
	long := fit(pdf, "A very long quiz name that cannot possibly fit in the column", 30)
	assert.LessOrEqual(t, pdf.GetStringWidth(long), 30.0)
	assert.Contains(t, long, "...")
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Math", titleCase("math"))
	assert.Equal(t, "", titleCase(""))
}

func manyScores(n int, at time.Time) []*domain.Score {
	out := make([]*domain.Score, n)
	for i := range out {
		out[i] = &domain.Score{
			ID:          fmt.Sprint(i),
			StudentName: fmt.Sprintf("Student %d", i),
			QuizName:    "Reading Comprehension",
			Score:       i % 10,
			Subject:     domain.SubjectEnglish,
			Type:        domain.LevelSecond,
			CreatedAt:   at.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}
