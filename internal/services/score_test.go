package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin/internal/domain"
)

func TestScoreService_Record(t *testing.T) {
	ctx := context.Background()
	valid := func() *domain.Score {
		return &domain.Score{StudentName: " Ana ", QuizName: "Quiz 1", Score: 8, Subject: domain.SubjectMath, Type: domain.LevelFirst}
	}

	tests := []struct {
		name    string
		mutate  func(s *domain.Score)
		wantErr error
	}{
		{name: "valid", mutate: func(*domain.Score) {}},
		{name: "zero score allowed", mutate: func(s *domain.Score) { s.Score = 0 }},
		{name: "missing student", mutate: func(s *domain.Score) { s.StudentName = "" }, wantErr: domain.ErrInvalidInput},
		{name: "missing quiz", mutate: func(s *domain.Score) { s.QuizName = " " }, wantErr: domain.ErrInvalidInput},
		{name: "negative score", mutate: func(s *domain.Score) { s.Score = -1 }, wantErr: domain.ErrInvalidInput},
		{name: "bad type", mutate: func(s *domain.Score) { s.Type = "final" }, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeScoreRepo{}
			feed := &fakeFeed{}
			svc := NewScoreService(repo, &fakeReportRenderer{}, feed, testTimeout)
			s := valid()
			tt.mutate(s)

			err := svc.Record(ctx, s)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.scores)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana", s.StudentName)
			assert.NotEmpty(t, s.ID)
			assert.False(t, s.CreatedAt.IsZero())
			assert.Equal(t, []domain.Change{{Collection: domain.CollectionScores, Op: domain.ChangeCreated, ID: s.ID}}, feed.changes)
		})
	}
}

func TestScoreService_ListAndReport(t *testing.T) {
	ctx := context.Background()
	repo := &fakeScoreRepo{}
	renderer := &fakeReportRenderer{}
	svc := NewScoreService(repo, renderer, nil, testTimeout)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)

	require.NoError(t, svc.Record(ctx, &domain.Score{StudentName: "A", QuizName: "Q", Score: 1, Subject: domain.SubjectMath, Type: domain.LevelFirst}))
	require.NoError(t, svc.Record(ctx, &domain.Score{StudentName: "B", QuizName: "Q", Score: 2, Subject: domain.SubjectMath, Type: domain.LevelFirst}))

	var buf bytes.Buffer
	require.NoError(t, svc.Report(ctx, &buf))
	assert.Equal(t, "B:2\nA:1\n", buf.String())

	renderer.err = errors.New("boom")
	err = svc.Report(ctx, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render score report")
}
