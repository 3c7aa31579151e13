package llm

import (
	"os"
	"strconv"
	"time"
)

// TaskType identifies the kind of generation being performed.
type TaskType string

const (
	TaskRoadmap    TaskType = "roadmap"
	TaskInsight    TaskType = "insight"
	TaskAssignment TaskType = "assignment"
	TaskGrading    TaskType = "grading"
)

// MaxAttempts is the fixed number of tries for one generation call.
const MaxAttempts = 3

// TaskConfig holds per-task parameters.
type TaskConfig struct {
	TimeoutMs int // overrides global if > 0
}

// LLMConfig holds all configuration for the generation client.
type LLMConfig struct {
	APIKey          string
	LogCalls        bool
	Endpoint        string
	Model           string
	TimeoutMs       int
	BackoffMs       int
	SearchGrounding bool
	Tasks           map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults and no credential.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		LogCalls:        true,
		Endpoint:        "https://generativelanguage.googleapis.com/v1beta/models",
		Model:           "gemini-2.5-flash",
		TimeoutMs:       60000,
		BackoffMs:       1000,
		SearchGrounding: true,
		Tasks: map[TaskType]TaskConfig{
			TaskRoadmap:    {TimeoutMs: 90000},
			TaskInsight:    {TimeoutMs: 30000},
			TaskAssignment: {TimeoutMs: 45000},
			TaskGrading:    {TimeoutMs: 60000},
		},
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset or invalid values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("MARGA_API_KEY")
	}
	if v := os.Getenv("MARGA_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("MARGA_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("MARGA_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("MARGA_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("MARGA_LLM_BACKOFF_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.BackoffMs = n
		}
	}
	if v := os.Getenv("MARGA_LLM_SEARCH_GROUNDING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SearchGrounding = b
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskRoadmap, "MARGA_LLM_ROADMAP_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskInsight, "MARGA_LLM_INSIGHT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAssignment, "MARGA_LLM_ASSIGNMENT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskGrading, "MARGA_LLM_GRADING_TIMEOUT_MS")

	return cfg
}

// HasCredential reports whether an API key is configured.
func (c LLMConfig) HasCredential() bool {
	return c.APIKey != ""
}

// TaskTimeout returns the per-attempt timeout for a task.
func (c LLMConfig) TaskTimeout(task TaskType) time.Duration {
	ms := c.TimeoutMs
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		ms = tc.TimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}

// Backoff returns the delay before the attempt following a failed one:
// 2^attempt backoff units, attempt being zero-based.
func (c LLMConfig) Backoff(attempt int) time.Duration {
	return time.Duration(c.BackoffMs) * time.Millisecond << uint(attempt)
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
