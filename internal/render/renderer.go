// Package render turns verse HTML into terminal text and measures how many
// lines it needs, so the detail screen can size each verse to fit.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sourcegraph/conc/iter"
)

// Mode selects which of the two renderers is used.
type Mode string

const (
	// ModeRich keeps inline markup and reports the natural height.
	ModeRich Mode = "rich"
	// ModePlain strips markup and always occupies a fixed height.
	ModePlain Mode = "plain"
)

type Options struct {
	Mode Mode
	// Base is the style every span starts from.
	Base lipgloss.Style
	// PlainHeight is the fixed line count used by ModePlain.
	PlainHeight int
}

type Renderer struct {
	mode        Mode
	base        lipgloss.Style
	plainHeight int
}

func New(opts Options) *Renderer {
	if opts.Mode != ModePlain {
		opts.Mode = ModeRich
	}
	if opts.PlainHeight < 1 {
		opts.PlainHeight = 1
	}
	return &Renderer{
		mode:        opts.Mode,
		base:        opts.Base,
		plainHeight: opts.PlainHeight,
	}
}

func (r *Renderer) Mode() Mode {
	return r.mode
}

// SetBase swaps the base style, e.g. after a theme change. Documents do not
// need reloading; the next Layout picks it up.
func (r *Renderer) SetBase(s lipgloss.Style) {
	r.base = s
}

// Load converts one HTML fragment into a Document.
func (r *Renderer) Load(fragment string) (*Document, error) {
	if r.mode == ModePlain {
		return parsePlain(fragment)
	}
	return parseRich(fragment)
}

// Result is the outcome of loading one fragment.
type Result struct {
	Doc *Document
	Err error
}

// LoadAll loads fragments concurrently. Results keep the input order.
func (r *Renderer) LoadAll(fragments []string) []Result {
	return iter.Map(fragments, func(f *string) Result {
		doc, err := r.Load(*f)
		return Result{Doc: doc, Err: err}
	})
}

// Layout styles and wraps a document to width columns.
func (r *Renderer) Layout(doc *Document, width int) string {
	if doc == nil || width <= 0 || doc.Empty() {
		return ""
	}

	var lines []string
	var cur strings.Builder
	flush := func() {
		lines = append(lines, ansi.Wrap(cur.String(), width, ""))
		cur.Reset()
	}

	for _, s := range doc.Spans {
		if s.Break {
			flush()
			continue
		}
		cur.WriteString(r.spanStyle(s).Render(s.Text))
	}
	flush()

	return strings.Join(lines, "\n")
}

// Measure returns the height a laid-out document occupies. Plain mode has
// no height feedback and always reports the fixed height.
func (r *Renderer) Measure(content string) int {
	if r.mode == ModePlain {
		return r.plainHeight
	}
	return Height(content)
}

func (r *Renderer) spanStyle(s Span) lipgloss.Style {
	return r.base.
		Italic(s.Italic).
		Bold(s.Bold).
		Underline(s.Underline).
		Faint(s.Faint)
}

// Height is the number of lines in rendered text; empty text has none.
func Height(text string) int {
	if text == "" {
		return 0
	}
	return lipgloss.Height(text)
}
