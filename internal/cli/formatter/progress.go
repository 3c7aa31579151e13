package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░] 45%. The bar is green above
// two thirds, yellow above one third, red below.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// ProgressLine summarizes step completion, e.g. "2/5 steps [████░░░░░░]  40%".
func ProgressLine(completed, total int) string {
	if total == 0 {
		return Dim("no steps yet")
	}
	pct := float64(completed) / float64(total)
	return fmt.Sprintf("%d/%d steps %s", completed, total, RenderProgress(pct, 20))
}
