package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mecrobet/marga/internal/db"
	"github.com/mecrobet/marga/internal/domain"
)

// SQLiteStudySessionRepo implements StudySessionRepo. Steps are stored
// through a SQLiteStepRepo on the same connection.
type SQLiteStudySessionRepo struct {
	db    db.DBTX
	steps *SQLiteStepRepo
}

func NewSQLiteStudySessionRepo(conn db.DBTX) *SQLiteStudySessionRepo {
	return &SQLiteStudySessionRepo{db: conn, steps: NewSQLiteStepRepo(conn)}
}

const studySessionColumns = `id, topic, level, duration_amount, duration_unit,
	roadmap, insight, assignment, feedback, created_at, updated_at`

func (r *SQLiteStudySessionRepo) Create(ctx context.Context, s *domain.StudySession) error {
	query := `INSERT INTO study_sessions (` + studySessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Topic,
		string(s.Level),
		s.Duration.Amount,
		string(s.Duration.Unit),
		s.Roadmap,
		s.Insight,
		s.Assignment,
		s.Feedback,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting study session: %w", err)
	}
	return r.steps.ReplaceAll(ctx, s.ID, s.Steps, completedFlags(s))
}

func (r *SQLiteStudySessionRepo) GetByID(ctx context.Context, id string) (*domain.StudySession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studySessionColumns+` FROM study_sessions WHERE id = ?`, id)
	s, err := scanStudySession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("study session %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadSteps(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns all sessions, most recently updated first.
func (r *SQLiteStudySessionRepo) List(ctx context.Context) ([]*domain.StudySession, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+studySessionColumns+`
		FROM study_sessions ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing study sessions: %w", err)
	}

	var sessions []*domain.StudySession
	for rows.Next() {
		s, err := scanStudySession(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating study sessions: %w", err)
	}
	// Close before issuing step queries; an in-memory database has one connection.
	rows.Close()

	for _, s := range sessions {
		if err := r.loadSteps(ctx, s); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// Update overwrites the session row and replaces its steps.
func (r *SQLiteStudySessionRepo) Update(ctx context.Context, s *domain.StudySession) error {
	query := `UPDATE study_sessions SET topic = ?, level = ?, duration_amount = ?, duration_unit = ?,
		roadmap = ?, insight = ?, assignment = ?, feedback = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Topic,
		string(s.Level),
		s.Duration.Amount,
		string(s.Duration.Unit),
		s.Roadmap,
		s.Insight,
		s.Assignment,
		s.Feedback,
		formatTime(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating study session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("study session %s: %w", s.ID, ErrNotFound)
	}
	return r.steps.ReplaceAll(ctx, s.ID, s.Steps, completedFlags(s))
}

// Touch sets updated_at without rewriting the rest of the session.
func (r *SQLiteStudySessionRepo) Touch(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE study_sessions SET updated_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("touching study session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("study session %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteStudySessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting study session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("study session %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteStudySessionRepo) loadSteps(ctx context.Context, s *domain.StudySession) error {
	steps, completed, err := r.steps.ListBySession(ctx, s.ID)
	if err != nil {
		return err
	}
	progress, err := domain.RestoreProgress(completed)
	if err != nil {
		return fmt.Errorf("study session %s: stored progress: %w", s.ID, err)
	}
	s.Steps = steps
	s.Progress = progress
	return nil
}

func completedFlags(s *domain.StudySession) []bool {
	if s.Progress == nil {
		return nil
	}
	return s.Progress.Completed()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudySession(row scanner) (*domain.StudySession, error) {
	var (
		s                domain.StudySession
		level, unit      string
		created, updated string
	)
	err := row.Scan(
		&s.ID,
		&s.Topic,
		&level,
		&s.Duration.Amount,
		&unit,
		&s.Roadmap,
		&s.Insight,
		&s.Assignment,
		&s.Feedback,
		&created,
		&updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning study session: %w", err)
	}
	s.Level = domain.Level(level)
	s.Duration.Unit = domain.DurationUnit(unit)
	if s.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &s, nil
}
