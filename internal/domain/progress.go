package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStepLocked is returned when completing a step whose predecessor
	// has not been completed yet.
	ErrStepLocked = errors.New("step is locked")

	// ErrStepOutOfRange is returned for an index outside the roadmap.
	ErrStepOutOfRange = errors.New("step index out of range")
)

type StepState string

const (
	StepLocked    StepState = "locked"
	StepUnlocked  StepState = "unlocked"
	StepCompleted StepState = "completed"
)

// Visible reports whether a step in this state may show its content.
func (s StepState) Visible() bool {
	return s == StepUnlocked || s == StepCompleted
}

// Progress tracks completion of a roadmap's steps. Completion is a
// monotonic frontier: step i can only be completed once step i-1 is.
type Progress struct {
	completed []bool
}

// NewProgress returns the initial state for n steps: step 0 unlocked,
// every other step locked.
func NewProgress(n int) *Progress {
	if n < 0 {
		n = 0
	}
	return &Progress{completed: make([]bool, n)}
}

// RestoreProgress rebuilds a Progress from persisted flags. Flags that
// break the frontier (a completed step after an incomplete one) are
// rejected rather than repaired.
func RestoreProgress(completed []bool) (*Progress, error) {
	for i := 1; i < len(completed); i++ {
		if completed[i] && !completed[i-1] {
			return nil, fmt.Errorf("restoring progress: step %d completed before step %d: %w", i, i-1, ErrStepLocked)
		}
	}
	flags := make([]bool, len(completed))
	copy(flags, completed)
	return &Progress{completed: flags}, nil
}

func (p *Progress) Len() int { return len(p.completed) }

// State returns the state of step i. Out-of-range indexes report StepLocked.
func (p *Progress) State(i int) StepState {
	if i < 0 || i >= len(p.completed) {
		return StepLocked
	}
	if p.completed[i] {
		return StepCompleted
	}
	if i == 0 || p.completed[i-1] {
		return StepUnlocked
	}
	return StepLocked
}

// States returns the state of every step in order.
func (p *Progress) States() []StepState {
	out := make([]StepState, len(p.completed))
	for i := range p.completed {
		out[i] = p.State(i)
	}
	return out
}

// Completed returns a copy of the completion flags.
func (p *Progress) Completed() []bool {
	out := make([]bool, len(p.completed))
	copy(out, p.completed)
	return out
}

// Complete marks step i completed, which unlocks step i+1. Completing a
// locked step fails with ErrStepLocked and leaves the state untouched.
// Completing an already completed step is a no-op.
func (p *Progress) Complete(i int) error {
	if i < 0 || i >= len(p.completed) {
		return fmt.Errorf("completing step %d of %d: %w", i, len(p.completed), ErrStepOutOfRange)
	}
	if p.State(i) == StepLocked {
		return fmt.Errorf("completing step %d: step %d is not complete: %w", i, i-1, ErrStepLocked)
	}
	p.completed[i] = true
	return nil
}

// CompletedCount returns the number of completed steps.
func (p *Progress) CompletedCount() int {
	n := 0
	for _, c := range p.completed {
		if c {
			n++
		}
	}
	return n
}

// Frontier returns the index of the first incomplete step, or Len() when
// every step is complete.
func (p *Progress) Frontier() int {
	for i, c := range p.completed {
		if !c {
			return i
		}
	}
	return len(p.completed)
}

// Done reports the terminal state: at least one step and all completed.
func (p *Progress) Done() bool {
	return len(p.completed) > 0 && p.Frontier() == len(p.completed)
}

// Fraction returns completed/total in [0,1]; zero for an empty roadmap.
func (p *Progress) Fraction() float64 {
	if len(p.completed) == 0 {
		return 0
	}
	return float64(p.CompletedCount()) / float64(len(p.completed))
}

// Sync returns p when it already tracks n steps and a fresh initial
// Progress otherwise. State is never truncated or padded.
func (p *Progress) Sync(n int) *Progress {
	if p != nil && len(p.completed) == n {
		return p
	}
	return NewProgress(n)
}
