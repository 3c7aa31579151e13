package testutil

import (
	"time"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/roadmap"
)

// SampleRoadmap is a three-day plan in the heading format the splitter expects.
const SampleRoadmap = `# Your Path to Linear Algebra

A short overview.

## Day 1: Vectors
- What a vector is
- Practice: add two vectors

## Day 2: Matrices
- Matrix multiplication

## Day 3: Eigenvalues
- Compute eigenvalues of a 2x2 matrix`

// SessionOption customizes a session built by NewTestSession.
type SessionOption func(*domain.StudySession)

// WithRoadmap installs markdown as the session's roadmap, parsed into steps.
func WithRoadmap(topic, markdown string) SessionOption {
	return func(s *domain.StudySession) {
		req := domain.RoadmapRequest{Topic: topic, Level: s.Level, Duration: s.Duration}
		s.ReplaceRoadmap(req, markdown, roadmap.Parse(markdown), s.UpdatedAt)
	}
}

// WithCompleted completes the first n steps in order.
func WithCompleted(n int) SessionOption {
	return func(s *domain.StudySession) {
		for i := 0; i < n; i++ {
			if err := s.CompleteStep(i, s.UpdatedAt); err != nil {
				panic(err)
			}
		}
	}
}

func WithAssignment(text string) SessionOption {
	return func(s *domain.StudySession) { s.Assignment = text }
}

func WithFeedback(text string) SessionOption {
	return func(s *domain.StudySession) { s.Feedback = text }
}

func WithInsight(text string) SessionOption {
	return func(s *domain.StudySession) { s.Insight = text }
}

func WithTopic(topic string) SessionOption {
	return func(s *domain.StudySession) { s.Topic = topic }
}

// NewTestSession returns a fresh session with a fixed clock.
func NewTestSession(opts ...SessionOption) *domain.StudySession {
	s := domain.NewStudySession(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	for _, opt := range opts {
		opt(s)
	}
	return s
}
