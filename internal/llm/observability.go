package llm

import (
	"github.com/mecrobet/marga/internal/logger"
)

// LLMCallEvent records metadata about a single generation call.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// RetryEvent records a failed attempt that will be retried.
type RetryEvent struct {
	Task    TaskType
	Attempt int // zero-based attempt that failed
	DelayMs int64
	Err     error
}

// Observer receives events about generation calls for logging.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
	OnRetry(event RetryEvent)
}

// LogObserver writes generation events to a structured logger.
type LogObserver struct {
	log *logger.Logger
}

// NewLogObserver creates an Observer that logs events to log.
func NewLogObserver(log *logger.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	o.log.Info("llm_call",
		"task", event.Task,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
		"attempts", event.Attempts,
		"status", status,
	)
}

func (o *LogObserver) OnRetry(event RetryEvent) {
	o.log.Warn("llm request retrying",
		"task", event.Task,
		"attempt", event.Attempt+1,
		"delay_ms", event.DelayMs,
		"error", event.Err,
	)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
func (NoopObserver) OnRetry(RetryEvent)          {}
