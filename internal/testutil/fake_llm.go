package testutil

import (
	"context"
	"sync"

	"github.com/mecrobet/marga/internal/llm"
)

// FakeLLM is a scripted llm.LLMClient. Responses are keyed by task; a task
// with an entry in Errors fails with that error instead.
type FakeLLM struct {
	mu        sync.Mutex
	Responses map[llm.TaskType]string
	Errors    map[llm.TaskType]error
	Calls     []llm.GenerateRequest
}

func NewFakeLLM() *FakeLLM {
	return &FakeLLM{
		Responses: map[llm.TaskType]string{},
		Errors:    map[llm.TaskType]error{},
	}
}

// Respond scripts a successful answer for task.
func (f *FakeLLM) Respond(task llm.TaskType, text string) *FakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[task] = text
	delete(f.Errors, task)
	return f
}

// Fail scripts a failure for task.
func (f *FakeLLM) Fail(task llm.TaskType, err error) *FakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[task] = err
	return f
}

func (f *FakeLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, req)
	if err, ok := f.Errors[req.Task]; ok {
		return nil, err
	}
	text, ok := f.Responses[req.Task]
	if !ok {
		return nil, &llm.TransportError{Attempts: llm.MaxAttempts, Err: context.DeadlineExceeded}
	}
	return &llm.GenerateResponse{Text: text, Model: "fake", Attempts: 1}, nil
}

// CallsFor returns the recorded requests for task.
func (f *FakeLLM) CallsFor(task llm.TaskType) []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []llm.GenerateRequest
	for _, c := range f.Calls {
		if c.Task == task {
			out = append(out, c)
		}
	}
	return out
}
