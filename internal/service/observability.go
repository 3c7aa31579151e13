package service

import (
	"context"
	"time"

	"github.com/mecrobet/marga/internal/logger"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	SessionID string
	Duration  time.Duration
	Err       error
	Fields    map[string]any
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	log *logger.Logger
}

// NewLogUseCaseObserver writes one structured line per use case.
func NewLogUseCaseObserver(log *logger.Logger) UseCaseObserver {
	if log == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{log: log}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	kv := make([]any, 0, 8+len(event.Fields)*2)
	kv = append(kv,
		"use_case", event.Name,
		"session_id", event.SessionID,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Err == nil,
	)
	for k, v := range event.Fields {
		kv = append(kv, k, v)
	}
	if event.Err != nil {
		o.log.Error("service_use_case", append(kv, "error", event.Err.Error())...)
		return
	}
	o.log.Info("service_use_case", kv...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
