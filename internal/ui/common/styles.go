// Package common provides shared styles for the terminal view.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
)

// Icon constants
const (
	TrophyIcon = "🏆"
	GoldIcon   = "🥇"
	SilverIcon = "🥈"
	BronzeIcon = "🥉"
)

// Lipgloss Styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	RowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	GoldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	SilverStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true)
	BronzeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD7F32")).Bold(true)
)

// HighlightStyle 返回高亮类别对应的样式
func HighlightStyle(h leaderboard.Highlight) lipgloss.Style {
	switch h {
	case leaderboard.HighlightFirst:
		return GoldStyle
	case leaderboard.HighlightSecond:
		return SilverStyle
	case leaderboard.HighlightThird:
		return BronzeStyle
	default:
		return RowStyle
	}
}

// HighlightIcon 返回高亮类别对应的奖牌
func HighlightIcon(h leaderboard.Highlight) string {
	switch h {
	case leaderboard.HighlightFirst:
		return GoldIcon
	case leaderboard.HighlightSecond:
		return SilverIcon
	case leaderboard.HighlightThird:
		return BronzeIcon
	default:
		return "  "
	}
}
