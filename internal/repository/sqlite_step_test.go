package repository

import (
	"context"
	"testing"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRepo_SetCompleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.NewTestSession(testutil.WithRoadmap("Go", testutil.SampleRoadmap))
	require.NoError(t, NewSQLiteStudySessionRepo(db).Create(ctx, s))

	repo := NewSQLiteStepRepo(db)
	require.NoError(t, repo.SetCompleted(ctx, s.ID, 0, true))

	_, completed, err := repo.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, completed)

	assert.ErrorIs(t, repo.SetCompleted(ctx, s.ID, 7, true), ErrNotFound)
}

func TestStepRepo_ReplaceAll_ShortFlags(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.NewTestSession()
	require.NoError(t, NewSQLiteStudySessionRepo(db).Create(ctx, s))

	repo := NewSQLiteStepRepo(db)
	steps := []domain.RoadmapStep{{Title: "Week 1", Order: 0}, {Title: "Week 2", Order: 1}}
	require.NoError(t, repo.ReplaceAll(ctx, s.ID, steps, []bool{true}))

	got, completed, err := repo.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, steps, got)
	assert.Equal(t, []bool{true, false}, completed)
}

func TestStudySessionRepo_GetByID_RejectsBrokenFrontier(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.NewTestSession(testutil.WithRoadmap("Go", testutil.SampleRoadmap))
	require.NoError(t, NewSQLiteStudySessionRepo(db).Create(ctx, s))

	// Completing step 2 directly bypasses the domain rules.
	require.NoError(t, NewSQLiteStepRepo(db).SetCompleted(ctx, s.ID, 2, true))

	_, err := NewSQLiteStudySessionRepo(db).GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrStepLocked)
}
