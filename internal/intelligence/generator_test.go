package intelligence

import (
	"context"
	"testing"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/llm"
	"github.com/mecrobet/marga/internal/media"
	"github.com/mecrobet/marga/internal/roadmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLLMClient records requests and returns a scripted answer.
type mockLLMClient struct {
	response string
	err      error
	calls    []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Attempts: 1}, nil
}

func testRoadmapRequest() domain.RoadmapRequest {
	return domain.RoadmapRequest{
		Topic:    "Linear Algebra",
		Level:    domain.LevelIntermediate,
		Duration: domain.Duration{Amount: 3, Unit: domain.UnitWeeks},
	}
}

func TestBuildRoadmapRequest(t *testing.T) {
	req := BuildRoadmapRequest(testRoadmapRequest())

	assert.Equal(t, llm.TaskRoadmap, req.Task)
	assert.Equal(t, roadmapSystemPrompt, req.SystemPrompt)
	assert.Contains(t, req.UserPrompt, `"Linear Algebra"`)
	assert.Contains(t, req.UserPrompt, "Intermediate")
	assert.Contains(t, req.UserPrompt, "3 Weeks")
	assert.Contains(t, req.UserPrompt, `"## Day 1"`)
	assert.NotContains(t, req.UserPrompt, "reference image")
	assert.Empty(t, req.Images)
}

func TestBuildRoadmapRequest_LongPlanUsesWeeks(t *testing.T) {
	r := testRoadmapRequest()
	r.Duration = domain.Duration{Amount: 3, Unit: domain.UnitMonths}

	req := BuildRoadmapRequest(r)

	assert.Contains(t, req.UserPrompt, `"## Week 1"`)
}

func TestBuildRoadmapRequest_AttachmentsKeepOrder(t *testing.T) {
	r := testRoadmapRequest()
	r.Attachments = []media.EncodedImage{
		{Data: "Zmlyc3Q=", MediaType: "image/png"},
		{Data: "c2Vjb25k", MediaType: "image/jpeg"},
	}

	req := BuildRoadmapRequest(r)

	require.Len(t, req.Images, 2)
	assert.Equal(t, "image/png", req.Images[0].MediaType)
	assert.Equal(t, "image/jpeg", req.Images[1].MediaType)
	assert.Contains(t, req.UserPrompt, "2 reference image(s)")
}

func TestRoadmapPrompt_HeadingConventionMatchesSplitter(t *testing.T) {
	assert.Contains(t, roadmapSystemPrompt, `"## Day X: <focus>"`)
	assert.Contains(t, roadmapSystemPrompt, `"## Week X: <focus>"`)

	// A response that follows the instructed format yields one step per heading.
	sample := "Overview\n\n## Day 1: Vectors\n- read\n\n## Day 2: Matrices\n- practice\n"
	steps := roadmap.Parse(sample)
	require.Len(t, steps, 2)
	assert.Equal(t, "Day 1: Vectors", steps[0].Title)
}

func TestSingleTurnBuilders_UseSeparatePersonas(t *testing.T) {
	insight := BuildInsightRequest("Go")
	assignment := BuildAssignmentRequest("Go")
	grading := BuildGradingRequest("Go", media.EncodedImage{Data: "eA==", MediaType: "image/png"})

	assert.Equal(t, llm.TaskInsight, insight.Task)
	assert.Equal(t, llm.TaskAssignment, assignment.Task)
	assert.Equal(t, llm.TaskGrading, grading.Task)

	prompts := map[string]bool{
		insight.SystemPrompt:    true,
		assignment.SystemPrompt: true,
		grading.SystemPrompt:    true,
		roadmapSystemPrompt:     true,
	}
	assert.Len(t, prompts, 4, "each task has its own persona")

	for _, r := range []llm.GenerateRequest{insight, assignment, grading} {
		assert.Contains(t, r.UserPrompt, "Go")
	}
	assert.Empty(t, insight.Images)
	assert.Empty(t, assignment.Images)
	require.Len(t, grading.Images, 1)
}

func TestAssignmentPrompt_Sections(t *testing.T) {
	assert.Contains(t, assignmentSystemPrompt, "Definitions")
	assert.Contains(t, assignmentSystemPrompt, "Theory")
	assert.Contains(t, assignmentSystemPrompt, "Exactly one realistic scenario")
	assert.Contains(t, assignmentSystemPrompt, "Do NOT include an answer key")
}

func TestGradingPrompt_NoNumericGrade(t *testing.T) {
	assert.Contains(t, gradingSystemPrompt, "## Overall Feedback")
	assert.Contains(t, gradingSystemPrompt, "## Correct Key Points")
	assert.Contains(t, gradingSystemPrompt, "## Areas for Improvement")
	assert.Contains(t, gradingSystemPrompt, "NEVER give a numeric grade")
}

func TestGenerator_ReturnsTrimmedText(t *testing.T) {
	client := &mockLLMClient{response: "\n## Day 1\nA\n"}
	gen := NewGenerator(client)

	text, err := gen.Roadmap(context.Background(), testRoadmapRequest())

	require.NoError(t, err)
	assert.Equal(t, "## Day 1\nA", text)
	require.Len(t, client.calls, 1)
	assert.Equal(t, llm.TaskRoadmap, client.calls[0].Task)
}

func TestGenerator_PassesFailureThrough(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrMissingCredential}
	gen := NewGenerator(client)

	for name, call := range map[string]func() (string, error){
		"insight":    func() (string, error) { return gen.Insight(context.Background(), "Go") },
		"assignment": func() (string, error) { return gen.Assignment(context.Background(), "Go") },
		"grade": func() (string, error) {
			return gen.Grade(context.Background(), "Go", media.EncodedImage{Data: "eA==", MediaType: "image/png"})
		},
	} {
		t.Run(name, func(t *testing.T) {
			text, err := call()
			assert.ErrorIs(t, err, llm.ErrMissingCredential)
			assert.Empty(t, text)
		})
	}
}
