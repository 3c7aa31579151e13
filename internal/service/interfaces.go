package service

import (
	"context"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/export"
	"github.com/mecrobet/marga/internal/media"
)

// StudyService is the single entry point for every user action. All
// surfaces (CLI, browser, HTTP) go through it.
type StudyService interface {
	// NewSession creates a session with default inputs and makes it active.
	NewSession(ctx context.Context) (*domain.StudySession, error)
	// Active returns the active session, creating one when none exists.
	Active(ctx context.Context) (*domain.StudySession, error)
	Use(ctx context.Context, id string) (*domain.StudySession, error)
	Get(ctx context.Context, id string) (*domain.StudySession, error)
	List(ctx context.Context) ([]*domain.StudySession, error)

	GenerateRoadmap(ctx context.Context, sessionID string, in RoadmapInput) (*RoadmapOutcome, error)
	CompleteStep(ctx context.Context, sessionID string, order int) (*domain.StudySession, error)

	GenerateAssignment(ctx context.Context, sessionID string) (string, error)
	Grade(ctx context.Context, sessionID string, submission media.Upload) (string, error)

	ExportRoadmap(ctx context.Context, sessionID string) (export.Artifact, error)
	ExportFeedback(ctx context.Context, sessionID string, origin export.FeedbackOrigin) (export.Artifact, error)
	ExportAssignment(ctx context.Context, sessionID string) (export.Artifact, error)
}

// RoadmapInput is what the user submits on the generate form.
type RoadmapInput struct {
	Topic    string
	Level    domain.Level
	Duration domain.Duration
	Images   []media.Upload
}

// RoadmapOutcome reports a successful generation.
type RoadmapOutcome struct {
	Session *domain.StudySession
	// Topic is the normalized topic; Corrected is set when it differs from
	// the input beyond letter case.
	Topic        string
	Corrected    bool
	SkippedFiles []string
	Steps        []domain.RoadmapStep
	// InsightErr is set when the study guide could not be generated. The
	// roadmap itself is still stored.
	InsightErr error
}
