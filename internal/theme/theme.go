package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps UI roles to colors.
type Theme struct {
	Key  string
	Name string

	Title     lipgloss.Color
	Text      lipgloss.Color
	Reference lipgloss.Color
	Emphasis  lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color

	Border    lipgloss.Color
	Accent    lipgloss.Color
	Selection lipgloss.Color
}

var (
	CatppuccinMocha = Theme{
		Key:       "catppuccin-mocha",
		Name:      "Catppuccin Mocha",
		Title:     lipgloss.Color("#f5c2e7"),
		Text:      lipgloss.Color("#cdd6f4"),
		Reference: lipgloss.Color("#89b4fa"),
		Emphasis:  lipgloss.Color("#f9e2af"),
		Muted:     lipgloss.Color("#6c7086"),
		Error:     lipgloss.Color("#f38ba8"),
		Border:    lipgloss.Color("#45475a"),
		Accent:    lipgloss.Color("#a6e3a1"),
		Selection: lipgloss.Color("#313244"),
	}

	Dracula = Theme{
		Key:       "dracula",
		Name:      "Dracula",
		Title:     lipgloss.Color("#ff79c6"),
		Text:      lipgloss.Color("#f8f8f2"),
		Reference: lipgloss.Color("#bd93f9"),
		Emphasis:  lipgloss.Color("#f1fa8c"),
		Muted:     lipgloss.Color("#6272a4"),
		Error:     lipgloss.Color("#ff5555"),
		Border:    lipgloss.Color("#44475a"),
		Accent:    lipgloss.Color("#50fa7b"),
		Selection: lipgloss.Color("#44475a"),
	}

	RosePineDawn = Theme{
		Key:       "rosepine-dawn",
		Name:      "Rosé Pine Dawn",
		Title:     lipgloss.Color("#d7827e"),
		Text:      lipgloss.Color("#575279"),
		Reference: lipgloss.Color("#907aa9"),
		Emphasis:  lipgloss.Color("#ea9d34"),
		Muted:     lipgloss.Color("#9893a5"),
		Error:     lipgloss.Color("#b4637a"),
		Border:    lipgloss.Color("#f2e9e1"),
		Accent:    lipgloss.Color("#56949f"),
		Selection: lipgloss.Color("#f2e9e1"),
	}

	SolarizedLight = Theme{
		Key:       "solarized-light",
		Name:      "Solarized Light",
		Title:     lipgloss.Color("#d33682"),
		Text:      lipgloss.Color("#657b83"),
		Reference: lipgloss.Color("#268bd2"),
		Emphasis:  lipgloss.Color("#b58900"),
		Muted:     lipgloss.Color("#93a1a1"),
		Error:     lipgloss.Color("#dc322f"),
		Border:    lipgloss.Color("#eee8d5"),
		Accent:    lipgloss.Color("#859900"),
		Selection: lipgloss.Color("#eee8d5"),
	}
)

var registry = map[string]Theme{
	CatppuccinMocha.Key: CatppuccinMocha,
	Dracula.Key:         Dracula,
	RosePineDawn.Key:    RosePineDawn,
	SolarizedLight.Key:  SolarizedLight,
}

// Get returns a theme by key, defaulting to Catppuccin Mocha if not found.
func Get(key string) Theme {
	if t, ok := registry[key]; ok {
		return t
	}
	return CatppuccinMocha
}

func Exists(key string) bool {
	_, ok := registry[key]
	return ok
}

// Names returns every theme key, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
