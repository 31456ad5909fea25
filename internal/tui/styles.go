package tui

import (
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}).
			Bold(true).
			Margin(1, 0, 1, 0)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#005577", Dark: "#00aadd"}).
			Padding(1, 2).
			Margin(0, 0, 1, 0)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#859900", Dark: "#50fa7b"}).
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#d33682", Dark: "#ff79c6"}).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#626262", Dark: "#a8a8a8"}).
			Margin(1, 0, 0, 0)

	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#cccccc"})
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#50fa7b"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).Bold(true)
)

func feedbackStyle(s model.Severity) lipgloss.Style {
	switch s {
	case model.SeverityError:
		return errorStyle
	case model.SeveritySuccess:
		return successStyle
	default:
		return infoStyle
	}
}
