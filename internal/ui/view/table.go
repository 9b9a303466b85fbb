// Package view provides UI rendering functions.
package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
	"github.com/palemoky/arcade-leaderboard/internal/ui/common"
)

const tableWidth = 30

// Table is a terminal output surface. Rows appended to it are drawn by View.
type Table struct {
	title string
	rows  []leaderboard.RankedRow
}

// NewTable creates an empty table with the given title.
func NewTable(title string) *Table {
	return &Table{title: title}
}

func (t *Table) Clear(context.Context) error {
	t.rows = t.rows[:0]
	return nil
}

func (t *Table) AppendRow(_ context.Context, row leaderboard.RankedRow) error {
	t.rows = append(t.rows, row)
	return nil
}

// Len returns the number of rows currently on the table.
func (t *Table) Len() int { return len(t.rows) }

// SetRows replaces the table contents with rows rendered elsewhere.
func (t *Table) SetRows(rows []leaderboard.RankedRow) {
	t.rows = append(t.rows[:0], rows...)
}

// View renders the table centered in the given width.
func (t *Table) View(width int) string {
	var sb strings.Builder

	title := common.TitleStyle(common.TrophyIcon + " " + t.title)
	sb.WriteString(lipgloss.PlaceHorizontal(tableWidth, lipgloss.Center, title) + "\n")
	sb.WriteString(strings.Repeat("─", tableWidth) + "\n")
	sb.WriteString(common.HeaderStyle.Render(fmt.Sprintf("   %-6s %9s  %s", "RANK", "SCORE", "NAME")) + "\n")
	sb.WriteString(strings.Repeat("─", tableWidth) + "\n")

	if len(t.rows) == 0 {
		sb.WriteString("No scores yet\n")
	}
	for _, row := range t.rows {
		sb.WriteString(renderRow(row) + "\n")
	}

	box := common.BoxStyle.Render(strings.TrimSuffix(sb.String(), "\n"))
	if width <= 0 {
		return box
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func renderRow(row leaderboard.RankedRow) string {
	line := fmt.Sprintf("%-6s %9s  %s", row.Ordinal(), row.Score, row.Name)
	return common.HighlightIcon(row.Highlight) + " " + common.HighlightStyle(row.Highlight).Render(line)
}
