package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to the terminal background: the first value is used on light
// terminals, the second on dark ones.
var (
	Primary = lipgloss.AdaptiveColor{Light: "#3F3D99", Dark: "#8B87FF"} // indigo
	Focus   = lipgloss.AdaptiveColor{Light: "#B85C00", Dark: "#FFB347"} // amber
	Success = lipgloss.AdaptiveColor{Light: "#1E7B4B", Dark: "#5BD699"}
	Error   = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#FF6B6B"}
	Muted   = lipgloss.AdaptiveColor{Light: "#6E6E80", Dark: "#8A8AA3"}
	Text    = lipgloss.AdaptiveColor{Light: "#1C1B29", Dark: "#ECEBFF"}
	BgDark  = lipgloss.AdaptiveColor{Light: "#E6E5F5", Dark: "#1B1A2E"}
)

var base = lipgloss.NewStyle().Foreground(Text)

var (
	TitleStyle    = base.Foreground(Primary).Bold(true).Padding(0, 1)
	SubtitleStyle = base.Foreground(Muted).Padding(0, 1)

	BoxStyle = base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	ItemStyle         = base.PaddingLeft(2)
	SelectedItemStyle = ItemStyle.Foreground(Focus).Bold(true)

	InfoStyle    = base.Foreground(Muted).Italic(true)
	SuccessStyle = base.Foreground(Success).Bold(true)
	ErrorStyle   = base.Foreground(Error).Bold(true)

	InputStyle        = base.Border(lipgloss.NormalBorder()).BorderForeground(Muted).Padding(0, 1)
	FocusedInputStyle = InputStyle.BorderForeground(Focus)

	LabelStyle = base.Foreground(Muted).Width(20)
	ValueStyle = base.Bold(true)
)
