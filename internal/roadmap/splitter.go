// Package roadmap turns a generated plan document into ordered steps.
package roadmap

import (
	"regexp"
	"strings"

	"github.com/mecrobet/marga/internal/domain"
)

// Splitter breaks a markdown roadmap into its steps. An empty result means
// the document has no interactive breakdown; it is not an error.
type Splitter interface {
	Split(markdown string) []domain.RoadmapStep
}

// stepHeading matches "## Day 3", "## week 12: Graphs", and similar lines.
var stepHeading = regexp.MustCompile(`(?i)^##[ \t]+(day|week)[ \t]+\d+\b`)

// HeadingSplitter splits on level-two "Day N" / "Week N" headings.
// Text before the first such heading is dropped.
type HeadingSplitter struct{}

func (HeadingSplitter) Split(markdown string) []domain.RoadmapStep {
	var (
		steps   []domain.RoadmapStep
		current *domain.RoadmapStep
		body    []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		steps = append(steps, *current)
	}

	for _, line := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if stepHeading.MatchString(trimmed) {
			flush()
			title := strings.TrimSpace(strings.TrimPrefix(trimmed, "##"))
			current = &domain.RoadmapStep{Title: title, Order: len(steps)}
			body = body[:0]
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return steps
}

// Parse splits markdown with the default HeadingSplitter.
func Parse(markdown string) []domain.RoadmapStep {
	return HeadingSplitter{}.Split(markdown)
}
