package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSteps(n int) []RoadmapStep {
	steps := make([]RoadmapStep, n)
	for i := range steps {
		steps[i] = RoadmapStep{Title: "Day", Content: "x", Order: i}
	}
	return steps
}

func TestNewStudySession_Defaults(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewStudySession(now)

	assert.NotEmpty(t, s.ID)
	assert.Empty(t, s.Topic)
	assert.Equal(t, LevelBeginner, s.Level)
	assert.Equal(t, Duration{Amount: 2, Unit: UnitWeeks}, s.Duration)
	assert.False(t, s.HasRoadmap())
	assert.Equal(t, 0, s.Progress.Len())
	assert.Equal(t, now, s.CreatedAt)
}

func TestStudySession_ReplaceRoadmapResetsProgress(t *testing.T) {
	now := time.Now()
	s := NewStudySession(now)
	req := RoadmapRequest{Topic: "Go", Level: LevelAdvanced, Duration: Duration{3, UnitDays}}

	s.ReplaceRoadmap(req, "## Day 1\na", sampleSteps(3), now)
	require.NoError(t, s.CompleteStep(0, now))
	require.NoError(t, s.CompleteStep(1, now))
	s.Insight = "old insight"

	s.ReplaceRoadmap(req, "## Day 1\nb", sampleSteps(3), now)
	assert.Equal(t, 0, s.Progress.CompletedCount(), "same-length regeneration must not carry progress")
	assert.Empty(t, s.Insight)

	s.ReplaceRoadmap(req, "## Day 1\nc", sampleSteps(5), now)
	assert.Equal(t, 5, s.Progress.Len())
	assert.Equal(t, StepUnlocked, s.StepState(0))
	assert.Equal(t, StepLocked, s.StepState(1))
}

func TestStudySession_CompleteStepRejectsLocked(t *testing.T) {
	now := time.Now()
	s := NewStudySession(now)
	s.ReplaceRoadmap(RoadmapRequest{Topic: "Go", Level: LevelBeginner, Duration: Duration{2, UnitDays}}, "md", sampleSteps(2), now)

	err := s.CompleteStep(1, now)
	assert.ErrorIs(t, err, ErrStepLocked)
	assert.Equal(t, StepLocked, s.StepState(1))
}
