package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorBgPanel   = lipgloss.Color("#374151")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles groups every style the tree renderer and the explorer use
type Styles struct {
	// Tree styles
	Group  lipgloss.Style
	Name   lipgloss.Style
	Value  lipgloss.Style
	Count  lipgloss.Style
	Branch lipgloss.Style

	// Explorer styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Selected lipgloss.Style
	Status   lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the colored styles used on terminals
func DefaultStyles() Styles {
	return Styles{
		Group: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),
		Name: lipgloss.NewStyle().
			Foreground(colorSecondary),
		Value: lipgloss.NewStyle().
			Foreground(colorAccent),
		Count: lipgloss.NewStyle().
			Foreground(colorMuted),
		Branch: lipgloss.NewStyle().
			Foreground(colorMuted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
		Subtitle: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),
		Selected: lipgloss.NewStyle().
			Background(colorBgPanel).
			Foreground(colorFg).
			Bold(true),
		Status: lipgloss.NewStyle().
			Background(colorBgPanel).
			Foreground(colorFg).
			Padding(0, 1),
		HelpKey: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(colorMuted),
		Error: lipgloss.NewStyle().
			Foreground(colorError),
	}
}

// PlainStyles returns styles that render text unchanged, for pipes and files
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Group: plain, Name: plain, Value: plain, Count: plain, Branch: plain,
		Title: plain, Subtitle: plain, Selected: plain, Status: plain,
		HelpKey: plain, HelpDesc: plain, Error: plain,
	}
}

// RenderKeyHint renders a keyboard shortcut hint
func (s Styles) RenderKeyHint(key, description string) string {
	return s.HelpKey.Render(key) + " " + s.HelpDesc.Render(description)
}
