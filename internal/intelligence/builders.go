package intelligence

import (
	"fmt"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/llm"
	"github.com/mecrobet/marga/internal/media"
)

// BuildRoadmapRequest assembles the full-plan request. Attachments are sent
// ahead of the instruction text in their original order.
func BuildRoadmapRequest(r domain.RoadmapRequest) llm.GenerateRequest {
	unit := r.Duration.StepGranularity()
	user := fmt.Sprintf(
		"Create a study roadmap for the topic %q.\n"+
			"Learner level: %s.\n"+
			"Total duration: %s.\n"+
			"Break the plan into sections headed \"## %s 1\", \"## %s 2\", and so on, covering the whole duration.",
		r.Topic, r.Level, r.Duration, unit, unit,
	)
	if n := len(r.Attachments); n > 0 {
		user += fmt.Sprintf("\n%d reference image(s) are attached; take them into account.", n)
	}
	return llm.GenerateRequest{
		Task:         llm.TaskRoadmap,
		SystemPrompt: roadmapSystemPrompt,
		UserPrompt:   user,
		Images:       r.Attachments,
	}
}

// BuildInsightRequest asks for the short study guide for topic.
func BuildInsightRequest(topic string) llm.GenerateRequest {
	return llm.GenerateRequest{
		Task:         llm.TaskInsight,
		SystemPrompt: insightSystemPrompt,
		UserPrompt:   fmt.Sprintf("Topic: %s", topic),
	}
}

// BuildAssignmentRequest asks for a checkpoint assignment on topic.
func BuildAssignmentRequest(topic string) llm.GenerateRequest {
	return llm.GenerateRequest{
		Task:         llm.TaskAssignment,
		SystemPrompt: assignmentSystemPrompt,
		UserPrompt:   fmt.Sprintf("Create the assignment for the topic: %s", topic),
	}
}

// BuildGradingRequest asks for feedback on one submitted answer sheet.
func BuildGradingRequest(topic string, submission media.EncodedImage) llm.GenerateRequest {
	return llm.GenerateRequest{
		Task:         llm.TaskGrading,
		SystemPrompt: gradingSystemPrompt,
		UserPrompt:   fmt.Sprintf("Review this submission for the topic: %s", topic),
		Images:       []media.EncodedImage{submission},
	}
}
