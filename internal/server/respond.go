package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/llm"
	"github.com/mecrobet/marga/internal/media"
	"github.com/mecrobet/marga/internal/repository"
	"github.com/mecrobet/marga/internal/service"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// errBadRequest marks request parsing failures.
var errBadRequest = errors.New("bad request")

// statusFor maps a service error to an HTTP status and a user-facing message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, service.ErrEmptyTopic),
		errors.Is(err, service.ErrNoSubmission),
		errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, media.ErrEncoding):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, domain.ErrStepOutOfRange):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrStepLocked):
		return http.StatusConflict, "Complete the previous step first."
	case errors.Is(err, service.ErrNoRoadmap),
		errors.Is(err, service.ErrNoTopic),
		errors.Is(err, service.ErrNoFeedback),
		errors.Is(err, service.ErrNoAssignment):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, llm.ErrMissingCredential):
		return http.StatusFailedDependency, llm.Describe(err)
	case errors.Is(err, llm.ErrTransport),
		errors.Is(err, llm.ErrMalformedResponse),
		errors.Is(err, llm.ErrUnexpected):
		return http.StatusBadGateway, llm.Describe(err)
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	Error(w, status, msg)
}
