package create_ui

import "github.com/charmbracelet/lipgloss"

type uiStyles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	pending lipgloss.Style
	done    lipgloss.Style
	failed  lipgloss.Style
	muted   lipgloss.Style
}

func initStyles() uiStyles {
	colors := catppuccinMocha()
	return uiStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(colors.accent),
		label:   lipgloss.NewStyle().Foreground(colors.text),
		pending: lipgloss.NewStyle().Foreground(colors.input),
		done:    lipgloss.NewStyle().Foreground(colors.green),
		failed:  lipgloss.NewStyle().Foreground(colors.red),
		muted:   lipgloss.NewStyle().Foreground(colors.muted),
	}
}

type uiColors struct {
	text   lipgloss.Color
	muted  lipgloss.Color
	accent lipgloss.Color
	input  lipgloss.Color
	green  lipgloss.Color
	red    lipgloss.Color
}

func catppuccinMocha() uiColors {
	return uiColors{
		text:   lipgloss.Color("#cdd6f4"),
		muted:  lipgloss.Color("#a6adc8"),
		accent: lipgloss.Color("#cba6f7"),
		input:  lipgloss.Color("#89b4fa"),
		green:  lipgloss.Color("#a6e3a1"),
		red:    lipgloss.Color("#f38ba8"),
	}
}
