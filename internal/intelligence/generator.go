package intelligence

import (
	"context"
	"strings"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/llm"
	"github.com/mecrobet/marga/internal/media"
)

// Generator runs the four generation tasks. Every method returns the raw
// markdown on success; failures are the llm package's errors, unchanged.
type Generator interface {
	Roadmap(ctx context.Context, req domain.RoadmapRequest) (string, error)
	Insight(ctx context.Context, topic string) (string, error)
	Assignment(ctx context.Context, topic string) (string, error)
	Grade(ctx context.Context, topic string, submission media.EncodedImage) (string, error)
}

type generator struct {
	client llm.LLMClient
}

// NewGenerator creates a Generator backed by an LLM client.
func NewGenerator(client llm.LLMClient) Generator {
	return &generator{client: client}
}

func (g *generator) Roadmap(ctx context.Context, req domain.RoadmapRequest) (string, error) {
	return g.run(ctx, BuildRoadmapRequest(req))
}

func (g *generator) Insight(ctx context.Context, topic string) (string, error) {
	return g.run(ctx, BuildInsightRequest(topic))
}

func (g *generator) Assignment(ctx context.Context, topic string) (string, error) {
	return g.run(ctx, BuildAssignmentRequest(topic))
}

func (g *generator) Grade(ctx context.Context, topic string, submission media.EncodedImage) (string, error) {
	return g.run(ctx, BuildGradingRequest(topic, submission))
}

func (g *generator) run(ctx context.Context, req llm.GenerateRequest) (string, error) {
	resp, err := g.client.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}
