package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mecrobet/marga/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Endpoint = endpoint
	cfg.BackoffMs = 1
	return cfg
}

func okBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

// recordSleeps replaces the client's sleep with one that records delays.
func recordSleeps(c LLMClient) *[]time.Duration {
	var delays []time.Duration
	c.(*geminiClient).sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return &delays
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		contents := body["contents"].([]any)
		parts := contents[0].(map[string]any)["parts"].([]any)
		require.Len(t, parts, 2)
		inline := parts[0].(map[string]any)["inlineData"].(map[string]any)
		assert.Equal(t, "image/png", inline["mimeType"])
		assert.Equal(t, "aGk=", inline["data"])
		assert.Equal(t, "user prompt", parts[1].(map[string]any)["text"])

		sys := body["systemInstruction"].(map[string]any)["parts"].([]any)
		assert.Equal(t, "system prompt", sys[0].(map[string]any)["text"])

		tools := body["tools"].([]any)
		assert.Contains(t, tools[0].(map[string]any), "google_search")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(okBody("## Day 1\nRead")))
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskRoadmap,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
		Images:       []media.EncodedImage{{Data: "aGk=", MediaType: "image/png"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "## Day 1\nRead", resp.Text)
	assert.Equal(t, 1, resp.Attempts)
}

func TestGeminiClient_Generate_NoSearchToolWhenDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "tools")
		w.Write([]byte(okBody("ok")))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.SearchGrounding = false
	_, err := NewGeminiClient(cfg, nil).Generate(context.Background(), GenerateRequest{Task: TaskInsight, UserPrompt: "x"})
	require.NoError(t, err)
}

func TestGeminiClient_Generate_MissingCredentialMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(okBody("ok")))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""

	var captured LLMCallEvent
	obs := &captureObserver{onCall: func(e LLMCallEvent) { captured = e }}
	_, err := NewGeminiClient(cfg, obs).Generate(context.Background(), GenerateRequest{Task: TaskRoadmap, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, captured.Attempts)
	assert.Equal(t, "NO_CREDENTIAL", captured.ErrorCode)
	assert.Contains(t, Describe(err), "API Key is missing")
}

func TestGeminiClient_Generate_RetriesTransientThenSucceeds(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("overloaded"))
			return
		}
		w.Write([]byte(okBody("ok")))
	}))
	defer srv.Close()

	client := NewGeminiClient(testConfig(srv.URL), NoopObserver{})
	delays := recordSleeps(client)

	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskRoadmap, UserPrompt: "x"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, 3, resp.Attempts)
	assert.Equal(t, []time.Duration{1 * time.Millisecond, 2 * time.Millisecond}, *delays)
}

func TestGeminiClient_Generate_ExhaustsRetries(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	var retries []RetryEvent
	obs := &captureObserver{onRetry: func(e RetryEvent) { retries = append(retries, e) }}
	client := NewGeminiClient(testConfig(srv.URL), obs)
	delays := recordSleeps(client)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskRoadmap, UserPrompt: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 3, te.Attempts)
	assert.Contains(t, err.Error(), "3 attempts")
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, int32(3), attempts.Load())
	assert.Len(t, *delays, 2, "no sleep after the final attempt")
	assert.Len(t, retries, 2)
}

func TestGeminiClient_Generate_MalformedIsNotRetried(t *testing.T) {
	bodies := []string{
		`{"candidates":[]}`,
		`{"candidates":[{"content":{"parts":[{"inlineData":{}}]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`,
		`not json`,
	}
	for _, b := range bodies {
		t.Run(b, func(t *testing.T) {
			var attempts atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts.Add(1)
				w.Write([]byte(b))
			}))
			defer srv.Close()

			_, err := NewGeminiClient(testConfig(srv.URL), NoopObserver{}).
				Generate(context.Background(), GenerateRequest{Task: TaskAssignment, UserPrompt: "x"})

			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.NotErrorIs(t, err, ErrTransport)
			assert.Equal(t, int32(1), attempts.Load())
		})
	}
}

func TestGeminiClient_Generate_UnreachableEndpoint(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	client := NewGeminiClient(cfg, NoopObserver{})
	recordSleeps(client)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskInsight, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrTransport)
	assert.NotContains(t, err.Error(), "test-key", "api key must not leak into errors")
}

func TestGeminiClient_Generate_CancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.BackoffMs = 60000
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewGeminiClient(cfg, NoopObserver{}).Generate(ctx, GenerateRequest{Task: TaskRoadmap, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrTransport)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGeminiClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(okBody("ok")))
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{onCall: func(e LLMCallEvent) { captured = e }}

	_, err := NewGeminiClient(testConfig(srv.URL), obs).Generate(context.Background(), GenerateRequest{
		Task:       TaskGrading,
		UserPrompt: "x",
	})

	require.NoError(t, err)
	assert.Equal(t, TaskGrading, captured.Task)
	assert.Equal(t, "gemini-2.5-flash", captured.Model)
	assert.True(t, captured.Success)
	assert.Equal(t, 1, captured.Attempts)
}

func TestDescribe(t *testing.T) {
	assert.Empty(t, Describe(nil))
	assert.True(t, strings.HasPrefix(Describe(&TransportError{Attempts: 3, Err: assert.AnError}), "Generation failed: request failed after 3 attempts"))
}

type captureObserver struct {
	onCall  func(LLMCallEvent)
	onRetry func(RetryEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) {
	if o.onCall != nil {
		o.onCall(e)
	}
}

func (o *captureObserver) OnRetry(e RetryEvent) {
	if o.onRetry != nil {
		o.onRetry(e)
	}
}
