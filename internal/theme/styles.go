package theme

import "github.com/charmbracelet/lipgloss"

// Styles is the full set of lipgloss styles the UI draws with.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Search      lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Reference   lipgloss.Style
	Verse       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Help        lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Unmeasured  lipgloss.Style
	Header      lipgloss.Style
	Placeholder lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title),
		Subtitle: lipgloss.NewStyle().
			Foreground(t.Muted),
		Search: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			Foreground(t.Text).
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(t.Accent).
			Background(t.Selection).
			Bold(true).
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(t.Accent),
		Reference: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Reference),
		Verse: lipgloss.NewStyle().
			Foreground(t.Text),
		Tab: lipgloss.NewStyle().
			Foreground(t.Muted).
			Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title).
			Background(t.Selection).
			Padding(0, 2),
		Help: lipgloss.NewStyle().
			Foreground(t.Muted),
		Status: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),
		Unmeasured: lipgloss.NewStyle().
			Foreground(t.Emphasis).
			Faint(true),
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Placeholder: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true).
			PaddingLeft(2),
	}
}
