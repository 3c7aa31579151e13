package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mecrobet/marga/internal/db"
	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/export"
	"github.com/mecrobet/marga/internal/intelligence"
	"github.com/mecrobet/marga/internal/logger"
	"github.com/mecrobet/marga/internal/media"
	"github.com/mecrobet/marga/internal/repository"
	"github.com/mecrobet/marga/internal/roadmap"
	"github.com/mecrobet/marga/internal/topic"
)

type studyService struct {
	sessions  repository.StudySessionRepo
	state     repository.StateRepo
	uow       db.UnitOfWork
	generator intelligence.Generator
	splitter  roadmap.Splitter
	exporter  *export.Builder
	log       *logger.Logger
	observer  UseCaseObserver
	now       func() time.Time
}

// NewStudyService wires the pipeline. A nil splitter selects
// roadmap.HeadingSplitter and a nil exporter selects the pattern renderer.
func NewStudyService(
	sessions repository.StudySessionRepo,
	state repository.StateRepo,
	uow db.UnitOfWork,
	generator intelligence.Generator,
	splitter roadmap.Splitter,
	exporter *export.Builder,
	log *logger.Logger,
	observers ...UseCaseObserver,
) StudyService {
	if splitter == nil {
		splitter = roadmap.HeadingSplitter{}
	}
	if exporter == nil {
		exporter = export.NewBuilder(nil)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &studyService{
		sessions:  sessions,
		state:     state,
		uow:       uow,
		generator: generator,
		splitter:  splitter,
		exporter:  exporter,
		log:       log,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *studyService) observe(ctx context.Context, name, sessionID string, start time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		SessionID: sessionID,
		Duration:  time.Since(start),
		Err:       err,
		Fields:    fields,
	})
}

func (s *studyService) NewSession(ctx context.Context) (*domain.StudySession, error) {
	sess := domain.NewStudySession(s.now())
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteStudySessionRepo(tx).Create(ctx, sess); err != nil {
			return err
		}
		return repository.NewSQLiteStateRepo(tx).SetActiveSessionID(ctx, sess.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return sess, nil
}

func (s *studyService) Active(ctx context.Context) (*domain.StudySession, error) {
	id, err := s.state.ActiveSessionID(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return s.NewSession(ctx)
	case err != nil:
		return nil, err
	}

	sess, err := s.sessions.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		// The pointer outlived its session.
		return s.NewSession(ctx)
	}
	return sess, err
}

func (s *studyService) Use(ctx context.Context, id string) (*domain.StudySession, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.state.SetActiveSessionID(ctx, sess.ID); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *studyService) Get(ctx context.Context, id string) (*domain.StudySession, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *studyService) List(ctx context.Context) ([]*domain.StudySession, error) {
	return s.sessions.List(ctx)
}

func (s *studyService) GenerateRoadmap(ctx context.Context, sessionID string, in RoadmapInput) (out *RoadmapOutcome, err error) {
	start := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "generate_roadmap", sessionID, start, err, fields) }()

	if strings.TrimSpace(in.Topic) == "" {
		return nil, ErrEmptyTopic
	}
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}

	normalized := topic.Normalize(in.Topic)
	images, skipped := media.EncodeAll(in.Images, s.log.With("session_id", sessionID))

	req := domain.RoadmapRequest{
		Topic:       normalized.Topic,
		Level:       in.Level,
		Duration:    in.Duration,
		Attachments: images,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	fields["topic"] = req.Topic
	fields["attachments"] = len(images)

	markdown, err := s.generator.Roadmap(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating roadmap: %w", err)
	}
	steps := s.splitter.Split(markdown)
	fields["steps"] = len(steps)

	insight, insightErr := s.generator.Insight(ctx, req.Topic)
	if insightErr != nil {
		s.log.Warn("study guide unavailable", "session_id", sessionID, "error", insightErr)
	}

	var sess *domain.StudySession
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteStudySessionRepo(tx)
		var err error
		sess, err = repo.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		sess.ReplaceRoadmap(req, markdown, steps, s.now())
		sess.Insight = insight
		return repo.Update(ctx, sess)
	})
	if err != nil {
		return nil, fmt.Errorf("saving roadmap: %w", err)
	}

	return &RoadmapOutcome{
		Session:      sess,
		Topic:        normalized.Topic,
		Corrected:    normalized.Corrected,
		SkippedFiles: skipped,
		Steps:        steps,
		InsightErr:   insightErr,
	}, nil
}

func (s *studyService) CompleteStep(ctx context.Context, sessionID string, order int) (sess *domain.StudySession, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "complete_step", sessionID, start, err, map[string]any{"step": order}) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		sess, err = repository.NewSQLiteStudySessionRepo(tx).GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if len(sess.Steps) == 0 {
			return ErrNoRoadmap
		}
		wasCompleted := sess.StepState(order) == domain.StepCompleted
		now := s.now()
		if err := sess.CompleteStep(order, now); err != nil {
			return err
		}
		if wasCompleted {
			return nil
		}
		if err := repository.NewSQLiteStepRepo(tx).SetCompleted(ctx, sessionID, order, true); err != nil {
			return err
		}
		return repository.NewSQLiteStudySessionRepo(tx).Touch(ctx, sessionID, now)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *studyService) GenerateAssignment(ctx context.Context, sessionID string) (text string, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "generate_assignment", sessionID, start, err, nil) }()

	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if sess.Topic == "" {
		return "", ErrNoTopic
	}

	text, err = s.generator.Assignment(ctx, sess.Topic)
	if err != nil {
		return "", fmt.Errorf("generating assignment: %w", err)
	}

	err = s.saveText(ctx, sessionID, func(sess *domain.StudySession) { sess.Assignment = text })
	if err != nil {
		return "", fmt.Errorf("saving assignment: %w", err)
	}
	return text, nil
}

func (s *studyService) Grade(ctx context.Context, sessionID string, submission media.Upload) (feedback string, err error) {
	start := time.Now()
	defer func() { s.observe(ctx, "grade_submission", sessionID, start, err, nil) }()

	if submission.Reader == nil {
		return "", ErrNoSubmission
	}
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if sess.Topic == "" {
		return "", ErrNoTopic
	}

	img, err := media.Encode(submission)
	if err != nil {
		return "", err
	}

	feedback, err = s.generator.Grade(ctx, sess.Topic, img)
	if err != nil {
		return "", fmt.Errorf("grading submission: %w", err)
	}

	err = s.saveText(ctx, sessionID, func(sess *domain.StudySession) { sess.Feedback = feedback })
	if err != nil {
		return "", fmt.Errorf("saving feedback: %w", err)
	}
	return feedback, nil
}

// saveText reloads the session inside a transaction, applies set, and
// writes it back.
func (s *studyService) saveText(ctx context.Context, sessionID string, set func(*domain.StudySession)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteStudySessionRepo(tx)
		sess, err := repo.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		set(sess)
		sess.UpdatedAt = s.now().UTC()
		return repo.Update(ctx, sess)
	})
}

func (s *studyService) ExportRoadmap(ctx context.Context, sessionID string) (export.Artifact, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return export.Artifact{}, err
	}
	if !sess.HasRoadmap() {
		return export.Artifact{}, ErrNoRoadmap
	}
	return s.exporter.Roadmap(export.RoadmapDocument{
		Topic:    sess.Topic,
		Level:    sess.Level,
		Duration: sess.Duration,
		Markdown: sess.Roadmap,
		Insight:  sess.Insight,
	})
}

func (s *studyService) ExportFeedback(ctx context.Context, sessionID string, origin export.FeedbackOrigin) (export.Artifact, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return export.Artifact{}, err
	}
	if sess.Feedback == "" {
		return export.Artifact{}, ErrNoFeedback
	}
	if origin == "" {
		origin = export.OriginGrade
	}
	return s.exporter.Feedback(sess.Topic, sess.Feedback, origin), nil
}

func (s *studyService) ExportAssignment(ctx context.Context, sessionID string) (export.Artifact, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return export.Artifact{}, err
	}
	if sess.Assignment == "" {
		return export.Artifact{}, ErrNoAssignment
	}
	return s.exporter.Assignment(sess.Topic, sess.Assignment), nil
}
