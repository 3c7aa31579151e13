package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders rows under a header line with dim column rules and
// no outer border.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleHeader.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})
	return t.String() + "\n"
}
