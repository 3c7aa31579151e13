package formatter

import (
	"fmt"
	"strings"

	"github.com/mecrobet/marga/internal/domain"
)

// LockedPlaceholder replaces the content of a step that is not unlocked yet.
const LockedPlaceholder = "Complete the previous step to unlock."

// AllDoneBanner is shown once every step of a roadmap is completed.
const AllDoneBanner = "All steps completed. Well done!"

// SessionHeader renders the topic line with level and duration.
func SessionHeader(s *domain.StudySession) string {
	topic := s.Topic
	if topic == "" {
		topic = "(no topic yet)"
	}
	return fmt.Sprintf("%s  %s", Bold(topic), Dim(fmt.Sprintf("%s · %s", s.Level, s.Duration)))
}

// StepProgress returns completed and total step counts for a session.
func StepProgress(s *domain.StudySession) (completed, total int) {
	for i := range s.Steps {
		if s.StepState(i) == domain.StepCompleted {
			completed++
		}
	}
	return completed, len(s.Steps)
}

// FormatStepLine renders one step title with its 1-based number and badge.
func FormatStepLine(step domain.RoadmapStep, state domain.StepState) string {
	num := fmt.Sprintf("%2d.", step.Order+1)
	return fmt.Sprintf("%s %s  %s", Dim(num), StepStyle(state).Render(step.Title), StepBadge(state))
}

// FormatStepBody returns the step content, or the locked placeholder.
func FormatStepBody(step domain.RoadmapStep, state domain.StepState) string {
	if !state.Visible() {
		return Dim(LockedPlaceholder)
	}
	if strings.TrimSpace(step.Content) == "" {
		return Dim("(no details)")
	}
	return step.Content
}

// FormatSteps renders the roadmap as a numbered list. Content is expanded
// for visible steps only.
func FormatSteps(s *domain.StudySession) string {
	var b strings.Builder
	b.WriteString(SessionHeader(s))
	b.WriteString("\n")

	if len(s.Steps) == 0 {
		if s.HasRoadmap() {
			b.WriteString(Dim("The roadmap has no Day or Week sections to track."))
		} else {
			b.WriteString(Dim("No roadmap yet. Run `marga generate` to create one."))
		}
		b.WriteString("\n")
		return b.String()
	}

	completed, total := StepProgress(s)
	b.WriteString(ProgressLine(completed, total))
	b.WriteString("\n\n")

	for i, step := range s.Steps {
		state := s.StepState(i)
		b.WriteString(FormatStepLine(step, state))
		b.WriteString("\n")
		b.WriteString(Indent(FormatStepBody(step, state), "     "))
		b.WriteString("\n\n")
	}

	if completed == total {
		b.WriteString(Success(AllDoneBanner))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSession renders a summary of what a session holds.
func FormatSession(s *domain.StudySession) string {
	have := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return Dim("none")
		}
		return StyleGreen.Render("ready")
	}
	completed, total := StepProgress(s)

	rows := [][]string{
		{"ID", s.ID},
		{"Topic", SessionHeader(s)},
		{"Roadmap", have(s.Roadmap)},
		{"Progress", ProgressLine(completed, total)},
		{"Study guide", have(s.Insight)},
		{"Assignment", have(s.Assignment)},
		{"Feedback", have(s.Feedback)},
		{"Updated", HumanTimestamp(s.UpdatedAt)},
	}
	label := StyleBlue.Width(13)
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(label.Render(r[0]) + r[1] + "\n")
	}
	return RenderBox("Session", strings.TrimRight(b.String(), "\n"))
}

// FormatDocument renders a stored generated text under a title.
func FormatDocument(title, text string) string {
	return Header(title) + "\n\n" + strings.TrimSpace(text) + "\n"
}
