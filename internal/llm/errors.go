package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential indicates no API key is configured. No request is sent.
	ErrMissingCredential = errors.New("API Key is missing. Set GEMINI_API_KEY to enable generation")

	// ErrTransport indicates the endpoint could not be reached or answered
	// with a non-success status on every attempt.
	ErrTransport = errors.New("generation request failed")

	// ErrMalformedResponse indicates a success status whose body did not
	// carry a candidate text. It is never retried.
	ErrMalformedResponse = errors.New("empty or unexpected response structure")

	// ErrUnexpected wraps any other failure inside the client.
	ErrUnexpected = errors.New("unexpected generation failure")
)

// TransportError reports a transport failure after the retry budget was spent.
type TransportError struct {
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// Describe renders a generation failure for display to the user.
func Describe(err error) string {
	var te *TransportError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return ErrMissingCredential.Error()
	case errors.As(err, &te):
		return "Generation failed: " + te.Error()
	case errors.Is(err, ErrMalformedResponse):
		return "Generation failed: " + ErrMalformedResponse.Error()
	default:
		return "Generation failed: " + err.Error()
	}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "NO_CREDENTIAL"
	case errors.Is(err, ErrMalformedResponse):
		return "MALFORMED"
	case errors.Is(err, ErrTransport):
		return "TRANSPORT"
	default:
		return "UNKNOWN"
	}
}
