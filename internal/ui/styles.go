package ui

import "github.com/charmbracelet/lipgloss"

// Icon constants
const (
	RockIcon     = "✊"
	PaperIcon    = "✋"
	ScissorsIcon = "✌️"
	HiddenIcon   = "❓"
	EmptyIcon    = "💺"
)

// Lipgloss Styles
var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	seatStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).Width(20).Align(lipgloss.Center)
	mySeatStyle = seatStyle.Foreground(lipgloss.Color("86"))
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).MarginTop(1)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// choiceIcon 将手势字符串转换为图标
func choiceIcon(choice string) string {
	switch choice {
	case "rock":
		return RockIcon
	case "paper":
		return PaperIcon
	case "scissors":
		return ScissorsIcon
	default:
		return ""
	}
}
