package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mecrobet/marga/internal/media"
)

// GenerateRequest holds the parameters for one generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Images       []media.EncodedImage // sent before the text part, in order
}

// GenerateResponse holds the text of a successful generation.
type GenerateResponse struct {
	Text      string
	Model     string
	Attempts  int
	LatencyMs int64
}

// LLMClient provides access to the text generation endpoint. A nil error
// means the response text is real content; every failure is an error.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// geminiClient implements LLMClient against a generateContent endpoint.
type geminiClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewGeminiClient creates an LLMClient for the configured endpoint and model.
func NewGeminiClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &geminiClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
		sleep:    sleepContext,
	}
}

// contentRequest is the JSON body sent to :generateContent.
type contentRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Tools             []tool    `json:"tools,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	InlineData *inlineData `json:"inlineData,omitempty"`
	Text       *string     `json:"text,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

// contentResponse is the subset of the response envelope that is read.
type contentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (resp *GenerateResponse, err error) {
	start := time.Now()
	attempts := 0

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
		event := LLMCallEvent{
			Task:      req.Task,
			Model:     c.cfg.Model,
			LatencyMs: time.Since(start).Milliseconds(),
			Attempts:  attempts,
			Success:   err == nil,
			ErrorCode: errorCode(err),
		}
		c.observer.OnCallComplete(event)
	}()

	if !c.cfg.HasCredential() {
		return nil, ErrMissingCredential
	}

	data, err := json.Marshal(c.buildBody(req))
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", ErrUnexpected, err)
	}

	var lastErr error
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		attempts = attempt + 1

		text, reqErr := c.doRequest(ctx, req.Task, data)
		if reqErr == nil {
			return &GenerateResponse{
				Text:      text,
				Model:     c.cfg.Model,
				Attempts:  attempts,
				LatencyMs: time.Since(start).Milliseconds(),
			}, nil
		}
		if isMalformed(reqErr) {
			return nil, reqErr
		}
		lastErr = reqErr

		// Don't retry once the caller has given up.
		if ctx.Err() != nil {
			break
		}
		if attempt < MaxAttempts-1 {
			delay := c.cfg.Backoff(attempt)
			c.observer.OnRetry(RetryEvent{
				Task:    req.Task,
				Attempt: attempt,
				DelayMs: delay.Milliseconds(),
				Err:     reqErr,
			})
			if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
				lastErr = sleepErr
				break
			}
		}
	}

	return nil, &TransportError{Attempts: attempts, Err: lastErr}
}

func (c *geminiClient) buildBody(req GenerateRequest) contentRequest {
	parts := make([]part, 0, len(req.Images)+1)
	for _, img := range req.Images {
		parts = append(parts, part{InlineData: &inlineData{MimeType: img.MediaType, Data: img.Data}})
	}
	userText := req.UserPrompt
	parts = append(parts, part{Text: &userText})

	body := contentRequest{
		Contents: []content{{Parts: parts}},
	}
	if req.SystemPrompt != "" {
		sys := req.SystemPrompt
		body.SystemInstruction = &content{Parts: []part{{Text: &sys}}}
	}
	if c.cfg.SearchGrounding {
		body.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}
	return body
}

// malformedError marks a terminal response-shape failure.
type malformedError struct{ detail string }

func (e *malformedError) Error() string { return ErrMalformedResponse.Error() + ": " + e.detail }
func (e *malformedError) Unwrap() error { return ErrMalformedResponse }

func isMalformed(err error) bool {
	_, ok := err.(*malformedError)
	return ok
}

func (c *geminiClient) doRequest(ctx context.Context, task TaskType, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.TaskTimeout(task))
	defer cancel()

	endpoint := strings.TrimRight(c.cfg.Endpoint, "/") + "/" + url.PathEscape(c.cfg.Model) + ":generateContent"
	endpoint += "?" + url.Values{"key": {c.cfg.APIKey}}.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", redactKey(err, c.cfg.APIKey)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", fmt.Errorf("endpoint returned status %d: %s", httpResp.StatusCode, truncate(string(respBody), 300))
	}

	var resp contentResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", &malformedError{detail: "decoding response: " + err.Error()}
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &malformedError{detail: "no candidate parts"}
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if text == nil || strings.TrimSpace(*text) == "" {
		return "", &malformedError{detail: "first part has no text"}
	}
	return *text, nil
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// redactKey strips the API key from transport errors, which quote the URL.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), key, "REDACTED"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
