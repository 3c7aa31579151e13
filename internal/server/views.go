package server

import (
	"time"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/service"
)

type durationView struct {
	Amount int    `json:"amount"`
	Unit   string `json:"unit"`
}

type stepView struct {
	Order int    `json:"order"`
	Title string `json:"title"`
	State string `json:"state"`
	// Content is withheld while the step is locked.
	Content string `json:"content,omitempty"`
}

type progressView struct {
	Completed int  `json:"completed"`
	Total     int  `json:"total"`
	Done      bool `json:"done"`
}

type sessionView struct {
	ID         string       `json:"id"`
	Topic      string       `json:"topic"`
	Level      string       `json:"level"`
	Duration   durationView `json:"duration"`
	Roadmap    string       `json:"roadmap,omitempty"`
	Insight    string       `json:"insight,omitempty"`
	Assignment string       `json:"assignment,omitempty"`
	Feedback   string       `json:"feedback,omitempty"`
	Steps      []stepView   `json:"steps"`
	Progress   progressView `json:"progress"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type roadmapView struct {
	Session      sessionView `json:"session"`
	Topic        string      `json:"topic"`
	Corrected    bool        `json:"corrected"`
	Notice       string      `json:"notice,omitempty"`
	SkippedFiles []string    `json:"skipped_files,omitempty"`
	InsightError string      `json:"insight_error,omitempty"`
}

type textView struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

func newSessionView(s *domain.StudySession) sessionView {
	v := sessionView{
		ID:         s.ID,
		Topic:      s.Topic,
		Level:      string(s.Level),
		Duration:   durationView{Amount: s.Duration.Amount, Unit: string(s.Duration.Unit)},
		Roadmap:    s.Roadmap,
		Insight:    s.Insight,
		Assignment: s.Assignment,
		Feedback:   s.Feedback,
		Steps:      make([]stepView, 0, len(s.Steps)),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	completed := 0
	for i, step := range s.Steps {
		state := s.StepState(i)
		sv := stepView{Order: step.Order, Title: step.Title, State: string(state)}
		if state.Visible() {
			sv.Content = step.Content
		}
		if state == domain.StepCompleted {
			completed++
		}
		v.Steps = append(v.Steps, sv)
	}
	v.Progress = progressView{
		Completed: completed,
		Total:     len(s.Steps),
		Done:      len(s.Steps) > 0 && completed == len(s.Steps),
	}
	return v
}

func newRoadmapView(out *service.RoadmapOutcome) roadmapView {
	v := roadmapView{
		Session:      newSessionView(out.Session),
		Topic:        out.Topic,
		Corrected:    out.Corrected,
		SkippedFiles: out.SkippedFiles,
	}
	if out.Corrected {
		v.Notice = "Topic corrected to: " + out.Topic
	}
	if out.InsightErr != nil {
		v.InsightError = out.InsightErr.Error()
	}
	return v
}
