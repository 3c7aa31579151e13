package server

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/export"
	"github.com/mecrobet/marga/internal/media"
	"github.com/mecrobet/marga/internal/service"
)

func (s *Server) generationContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.opts.GenerationTimeout > 0 {
		return context.WithTimeout(r.Context(), s.opts.GenerationTimeout)
	}
	return context.WithCancel(r.Context())
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.NewSession(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	JSON(w, http.StatusCreated, newSessionView(sess))
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.svc.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	out := make([]sessionView, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, newSessionView(sess))
	}
	JSON(w, http.StatusOK, out)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	JSON(w, http.StatusOK, newSessionView(sess))
}

func (s *Server) generateRoadmap(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && err != http.ErrNotMultipart {
		s.fail(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	in, err := parseRoadmapInput(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if r.MultipartForm != nil {
		in.Images = uploads(r.MultipartForm.File["images"])
		defer closeUploads(in.Images)
	}

	ctx, cancel := s.generationContext(r)
	defer cancel()
	out, err := s.svc.GenerateRoadmap(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	JSON(w, http.StatusOK, newRoadmapView(out))
}

// parseRoadmapInput reads the form fields, applying the form defaults to
// missing values.
func parseRoadmapInput(r *http.Request) (service.RoadmapInput, error) {
	in := service.RoadmapInput{
		Topic:    r.FormValue("topic"),
		Level:    domain.DefaultLevel,
		Duration: domain.Duration{Amount: domain.DefaultDurationAmount, Unit: domain.DefaultDurationUnit},
	}
	if v := strings.TrimSpace(r.FormValue("level")); v != "" {
		level, err := domain.ParseLevel(v)
		if err != nil {
			return in, err
		}
		in.Level = level
	}
	if v := strings.TrimSpace(r.FormValue("amount")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("%w: amount %q is not a number", errBadRequest, v)
		}
		in.Duration.Amount = n
	}
	if v := strings.TrimSpace(r.FormValue("unit")); v != "" {
		unit, err := domain.ParseDurationUnit(v)
		if err != nil {
			return in, err
		}
		in.Duration.Unit = unit
	}
	return in, nil
}

// uploads opens each file header. Files that cannot be opened are passed
// through with a nil reader so the encoder reports them as skipped.
func uploads(headers []*multipart.FileHeader) []media.Upload {
	out := make([]media.Upload, 0, len(headers))
	for _, fh := range headers {
		u := media.Upload{Name: fh.Filename, MediaType: fh.Header.Get("Content-Type")}
		if f, err := fh.Open(); err == nil {
			u.Reader = f
		}
		out = append(out, u)
	}
	return out
}

func closeUploads(us []media.Upload) {
	for _, u := range us {
		if c, ok := u.Reader.(multipart.File); ok {
			c.Close()
		}
	}
}

func (s *Server) completeStep(w http.ResponseWriter, r *http.Request) {
	order, err := strconv.Atoi(chi.URLParam(r, "order"))
	if err != nil {
		s.fail(w, fmt.Errorf("%w: step order must be a number", errBadRequest))
		return
	}
	sess, err := s.svc.CompleteStep(r.Context(), chi.URLParam(r, "id"), order)
	if err != nil {
		s.fail(w, err)
		return
	}
	JSON(w, http.StatusOK, newSessionView(sess))
}

func (s *Server) generateAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.generationContext(r)
	defer cancel()
	id := chi.URLParam(r, "id")
	text, err := s.svc.GenerateAssignment(ctx, id)
	if err != nil {
		s.fail(w, err)
		return
	}
	JSON(w, http.StatusOK, textView{SessionID: id, Text: text})
}

func (s *Server) grade(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.fail(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	files := uploads(r.MultipartForm.File["image"])
	defer closeUploads(files)
	if len(files) == 0 {
		s.fail(w, service.ErrNoSubmission)
		return
	}

	ctx, cancel := s.generationContext(r)
	defer cancel()
	id := chi.URLParam(r, "id")
	feedback, err := s.svc.Grade(ctx, id, files[0])
	if err != nil {
		s.fail(w, err)
		return
	}
	JSON(w, http.StatusOK, textView{SessionID: id, Text: feedback})
}

func (s *Server) exportRoadmap(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.ExportRoadmap(r.Context(), chi.URLParam(r, "id"))
	s.sendArtifact(w, a, err)
}

func (s *Server) exportFeedback(w http.ResponseWriter, r *http.Request) {
	origin := export.OriginGrade
	if reload, _ := strconv.ParseBool(r.URL.Query().Get("reload")); reload {
		origin = export.OriginReload
	}
	a, err := s.svc.ExportFeedback(r.Context(), chi.URLParam(r, "id"), origin)
	s.sendArtifact(w, a, err)
}

func (s *Server) exportAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.ExportAssignment(r.Context(), chi.URLParam(r, "id"))
	s.sendArtifact(w, a, err)
}

func (s *Server) sendArtifact(w http.ResponseWriter, a export.Artifact, err error) {
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Body)
}
