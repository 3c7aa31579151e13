// Package export builds the downloadable roadmap, feedback, and assignment
// documents and their deterministic filenames.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mecrobet/marga/internal/domain"
)

//go:embed templates/roadmap.html.tmpl
var templateFS embed.FS

var roadmapTmpl = template.Must(template.ParseFS(templateFS, "templates/roadmap.html.tmpl"))

// FeedbackOrigin tags a feedback download as fresh from grading or a
// re-display of the stored result.
type FeedbackOrigin string

const (
	OriginGrade  FeedbackOrigin = "GRADE"
	OriginReload FeedbackOrigin = "RELOAD"
)

const (
	ContentTypeHTML     = "text/html; charset=utf-8"
	ContentTypeMarkdown = "text/markdown; charset=utf-8"
)

// Artifact is a named document ready for download.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// RoadmapDocument is the input for the styled roadmap page.
type RoadmapDocument struct {
	Topic    string
	Level    domain.Level
	Duration domain.Duration
	Markdown string
	Insight  string
}

// Builder renders artifacts. The zero value is not usable; call NewBuilder.
type Builder struct {
	renderer Renderer
	now      func() time.Time
}

// NewBuilder creates a Builder using r for markdown conversion. A nil r
// selects PatternRenderer.
func NewBuilder(r Renderer) *Builder {
	if r == nil {
		r = PatternRenderer{}
	}
	return &Builder{renderer: r, now: time.Now}
}

type roadmapView struct {
	Topic       string
	Level       string
	Duration    string
	Insight     template.HTML
	Body        template.HTML
	GeneratedAt string
}

// Roadmap builds the self-contained HTML document for a roadmap.
func (b *Builder) Roadmap(doc RoadmapDocument) (Artifact, error) {
	view := roadmapView{
		Topic:    doc.Topic,
		Level:    string(doc.Level),
		Duration: doc.Duration.String(),
		// Renderer output is escaped before any tags are added.
		Body:        template.HTML(b.renderer.Render(doc.Markdown)),
		GeneratedAt: b.now().Format("2006-01-02 15:04 MST"),
	}
	if strings.TrimSpace(doc.Insight) != "" {
		view.Insight = template.HTML(b.renderer.Render(doc.Insight))
	}

	var buf bytes.Buffer
	if err := roadmapTmpl.Execute(&buf, view); err != nil {
		return Artifact{}, fmt.Errorf("rendering roadmap document: %w", err)
	}
	return Artifact{
		Filename:    RoadmapFilename(doc.Topic, doc.Duration),
		ContentType: ContentTypeHTML,
		Body:        buf.Bytes(),
	}, nil
}

// Feedback wraps graded feedback as a markdown document.
func (b *Builder) Feedback(topic, feedback string, origin FeedbackOrigin) Artifact {
	body := fmt.Sprintf("# Marga Feedback: %s\n\n%s\n", topic, strings.TrimSpace(feedback))
	return Artifact{
		Filename:    FeedbackFilename(topic, origin),
		ContentType: ContentTypeMarkdown,
		Body:        []byte(body),
	}
}

// Assignment wraps an assignment as a markdown document.
func (b *Builder) Assignment(topic, assignment string) Artifact {
	body := fmt.Sprintf("# Marga Assignment: %s\n\n%s\n", topic, strings.TrimSpace(assignment))
	return Artifact{
		Filename:    AssignmentFilename(topic),
		ContentType: ContentTypeMarkdown,
		Body:        []byte(body),
	}
}

// RoadmapFilename is Marga_Roadmap_<topic>_<amount><unit>.html.
func RoadmapFilename(topic string, d domain.Duration) string {
	return fmt.Sprintf("Marga_Roadmap_%s_%s.html", slug(topic), d.Compact())
}

// FeedbackFilename is Marga_Feedback_<topic>_<GRADE|RELOAD>.md.
func FeedbackFilename(topic string, origin FeedbackOrigin) string {
	return fmt.Sprintf("Marga_Feedback_%s_%s.md", slug(topic), origin)
}

// AssignmentFilename is Marga_Assignment_<topic>.md.
func AssignmentFilename(topic string) string {
	return fmt.Sprintf("Marga_Assignment_%s.md", slug(topic))
}

// slug joins whitespace-separated words with underscores. Path separators
// are replaced too so a topic can never escape the export directory.
func slug(topic string) string {
	s := strings.Join(strings.Fields(topic), "_")
	return strings.NewReplacer("/", "_", `\`, "_").Replace(s)
}

// Save writes a to dir, overwriting any file of the same name, and returns
// the written path.
func Save(dir string, a Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, a.Filename)
	if err := os.WriteFile(path, a.Body, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", a.Filename, err)
	}
	return path, nil
}
