package repository

import (
	"context"
	"fmt"

	"github.com/mecrobet/marga/internal/db"
	"github.com/mecrobet/marga/internal/domain"
)

// SQLiteStepRepo implements StepRepo using a SQLite database.
type SQLiteStepRepo struct {
	db db.DBTX
}

func NewSQLiteStepRepo(conn db.DBTX) *SQLiteStepRepo {
	return &SQLiteStepRepo{db: conn}
}

// ReplaceAll discards every stored step of the session and inserts steps.
// completed may be shorter than steps; missing entries are false.
func (r *SQLiteStepRepo) ReplaceAll(ctx context.Context, sessionID string, steps []domain.RoadmapStep, completed []bool) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM roadmap_steps WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing roadmap steps: %w", err)
	}
	query := `INSERT INTO roadmap_steps (session_id, step_order, title, content, completed)
		VALUES (?, ?, ?, ?, ?)`
	for i, s := range steps {
		done := i < len(completed) && completed[i]
		if _, err := r.db.ExecContext(ctx, query, sessionID, s.Order, s.Title, s.Content, boolToInt(done)); err != nil {
			return fmt.Errorf("inserting roadmap step %d: %w", s.Order, err)
		}
	}
	return nil
}

func (r *SQLiteStepRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.RoadmapStep, []bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT step_order, title, content, completed
		FROM roadmap_steps WHERE session_id = ? ORDER BY step_order`, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing roadmap steps: %w", err)
	}
	defer rows.Close()

	var (
		steps     []domain.RoadmapStep
		completed []bool
	)
	for rows.Next() {
		var (
			s    domain.RoadmapStep
			done int
		)
		if err := rows.Scan(&s.Order, &s.Title, &s.Content, &done); err != nil {
			return nil, nil, fmt.Errorf("scanning roadmap step: %w", err)
		}
		steps = append(steps, s)
		completed = append(completed, done != 0)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating roadmap steps: %w", err)
	}
	return steps, completed, nil
}

func (r *SQLiteStepRepo) SetCompleted(ctx context.Context, sessionID string, order int, completed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE roadmap_steps SET completed = ?
		WHERE session_id = ? AND step_order = ?`, boolToInt(completed), sessionID, order)
	if err != nil {
		return fmt.Errorf("updating roadmap step: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("roadmap step %d: %w", order, ErrNotFound)
	}
	return nil
}
