package roadmap

import (
	"testing"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TwoDays(t *testing.T) {
	steps := Parse("## Day 1\nA\n## Day 2\nB")

	assert.Equal(t, []domain.RoadmapStep{
		{Title: "Day 1", Content: "A", Order: 0},
		{Title: "Day 2", Content: "B", Order: 1},
	}, steps)
}

func TestParse_NoHeadings(t *testing.T) {
	assert.Empty(t, Parse("Just some text\n# Title\n### Day 1\nnot level two"))
	assert.Empty(t, Parse(""))
}

func TestParse_DropsPreamble(t *testing.T) {
	md := `# Your Path to Go

Overview paragraph.

## Week 1: Basics
- syntax
- tooling

## Week 2: Concurrency
- goroutines

**Next Step:** start week 1.`

	steps := Parse(md)

	require.Len(t, steps, 2)
	assert.Equal(t, "Week 1: Basics", steps[0].Title)
	assert.Equal(t, "- syntax\n- tooling", steps[0].Content)
	assert.Equal(t, "Week 2: Concurrency", steps[1].Title)
	assert.Contains(t, steps[1].Content, "goroutines")
	assert.Contains(t, steps[1].Content, "Next Step")
	for _, s := range steps {
		assert.NotContains(t, s.Content, "Overview paragraph")
	}
}

func TestParse_CaseInsensitiveAndMixed(t *testing.T) {
	md := "## day 1\nx\n##   WEEK 2 recap\ny\r\n## Daylight savings\nz"

	steps := Parse(md)

	require.Len(t, steps, 2)
	assert.Equal(t, "day 1", steps[0].Title)
	assert.Equal(t, "WEEK 2 recap", steps[1].Title)
	assert.Equal(t, "y\n## Daylight savings\nz", steps[1].Content, "non-numbered headings stay in the body")
}

func TestParse_SubheadingsStayInStep(t *testing.T) {
	md := "## Day 1\n### Morning\nread\n### Evening\nquiz\n## Day 2\nrest"

	steps := Parse(md)

	require.Len(t, steps, 2)
	assert.Equal(t, "### Morning\nread\n### Evening\nquiz", steps[0].Content)
	assert.Equal(t, 1, steps[1].Order)
}

func TestParse_EmptyStepBody(t *testing.T) {
	steps := Parse("## Day 1\n## Day 2\nB")

	require.Len(t, steps, 2)
	assert.Empty(t, steps[0].Content)
	assert.Equal(t, "B", steps[1].Content)
}

func TestHeadingSplitter_ImplementsSplitter(t *testing.T) {
	var s Splitter = HeadingSplitter{}
	assert.Len(t, s.Split("## Week 1\na"), 1)
}
