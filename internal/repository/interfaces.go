package repository

import (
	"context"
	"time"

	"github.com/mecrobet/marga/internal/domain"
)

// StudySessionRepo persists whole study sessions, steps and progress included.
type StudySessionRepo interface {
	Create(ctx context.Context, s *domain.StudySession) error
	GetByID(ctx context.Context, id string) (*domain.StudySession, error)
	List(ctx context.Context) ([]*domain.StudySession, error)
	Update(ctx context.Context, s *domain.StudySession) error
	Touch(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// StepRepo stores the parsed roadmap steps of a session with their
// completion flags.
type StepRepo interface {
	ReplaceAll(ctx context.Context, sessionID string, steps []domain.RoadmapStep, completed []bool) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.RoadmapStep, []bool, error)
	SetCompleted(ctx context.Context, sessionID string, order int, completed bool) error
}

// StateRepo holds process-wide settings such as the active session.
type StateRepo interface {
	ActiveSessionID(ctx context.Context) (string, error)
	SetActiveSessionID(ctx context.Context, id string) error
}
