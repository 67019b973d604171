package studio

import "github.com/charmbracelet/lipgloss"

var (
	lightForeground = lipgloss.Color("#24211c")
	lightPrimary    = lipgloss.Color("#8c4a35")
	lightAccent     = lipgloss.Color("#4a6b5d")
	lightMuted      = lipgloss.Color("#8a857c")
	lightBorder     = lipgloss.Color("#d8d2c6")

	darkForeground = lipgloss.Color("#e8e3d8")
	darkPrimary    = lipgloss.Color("#d08770")
	darkAccent     = lipgloss.Color("#8fbcab")
	darkMuted      = lipgloss.Color("#6f695f")
	darkBorder     = lipgloss.Color("#433e36")

	errorColor = lipgloss.Color("#c0443a")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light color scheme.
func LightTheme() Theme {
	return Theme{
		Foreground: lightForeground,
		Primary:    lightPrimary,
		Accent:     lightAccent,
		Muted:      lightMuted,
		Border:     lightBorder,
		IsDark:     false,
	}
}

// DarkTheme returns the dark color scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: darkForeground,
		Primary:    darkPrimary,
		Accent:     darkAccent,
		Muted:      darkMuted,
		Border:     darkBorder,
		IsDark:     true,
	}
}

// ThemeByName maps a persisted theme name to its Theme. Unknown names
// fall back to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds the styled components for every screen.
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Tab     lipgloss.Style
	TabOn   lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles builds the style set for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Status: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(errorColor).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		TabOn: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}
