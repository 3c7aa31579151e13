package domain

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied to a fresh session, matching the input form's initial values.
const (
	DefaultTopic          = "Web Development"
	DefaultDurationAmount = 2
	DefaultDurationUnit   = UnitWeeks
	DefaultLevel          = LevelBeginner
)

// StudySession is the per-user state shared by every action: the current
// topic, the last generated roadmap with its step progress, and the last
// insight, assignment, and feedback texts. Each field is replaced wholesale
// by the operation that produces it.
type StudySession struct {
	ID         string
	Topic      string
	Level      Level
	Duration   Duration
	Roadmap    string
	Steps      []RoadmapStep
	Progress   *Progress
	Insight    string
	Assignment string
	Feedback   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewStudySession is the single initialization path for session state.
func NewStudySession(now time.Time) *StudySession {
	now = now.UTC()
	return &StudySession{
		ID:        uuid.New().String(),
		Level:     DefaultLevel,
		Duration:  Duration{Amount: DefaultDurationAmount, Unit: DefaultDurationUnit},
		Progress:  NewProgress(0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReplaceRoadmap installs a newly generated roadmap. Prior steps and their
// progress are discarded; progress restarts at the initial state.
func (s *StudySession) ReplaceRoadmap(req RoadmapRequest, markdown string, steps []RoadmapStep, now time.Time) {
	s.Topic = req.Topic
	s.Level = req.Level
	s.Duration = req.Duration
	s.Roadmap = markdown
	s.Steps = steps
	s.Progress = NewProgress(len(steps))
	s.Insight = ""
	s.UpdatedAt = now.UTC()
}

// HasRoadmap reports whether a roadmap text has been generated.
func (s *StudySession) HasRoadmap() bool {
	return s.Roadmap != ""
}

// StepState returns the unlock state of step i.
func (s *StudySession) StepState(i int) StepState {
	return s.progress().State(i)
}

// CompleteStep applies the single legal progress transition.
func (s *StudySession) CompleteStep(i int, now time.Time) error {
	p := s.progress()
	if err := p.Complete(i); err != nil {
		return err
	}
	s.Progress = p
	s.UpdatedAt = now.UTC()
	return nil
}

func (s *StudySession) progress() *Progress {
	return s.Progress.Sync(len(s.Steps))
}
