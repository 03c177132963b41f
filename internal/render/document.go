package render

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidFragment is returned when a fragment cannot be converted at all.
var ErrInvalidFragment = errors.New("fragment is not valid UTF-8")

// Span is a run of text sharing one inline style. A Break span carries no
// text and ends the current line.
type Span struct {
	Text      string
	Italic    bool
	Bold      bool
	Underline bool
	Faint     bool
	Break     bool
}

func (s Span) sameStyle(o inline) bool {
	return !s.Break && s.Italic == o.italic && s.Bold == o.bold && s.Underline == o.underline && s.Faint == o.faint
}

// Document is a parsed verse fragment, independent of width.
type Document struct {
	Spans []Span
}

// PlainText joins the spans with breaks as newlines.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for _, s := range d.Spans {
		if s.Break {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func (d *Document) Empty() bool {
	return len(d.Spans) == 0
}

// parseRich loads the fragment inside the page shell and flattens the body
// into styled spans.
func parseRich(fragment string) (*Document, error) {
	if !utf8.ValidString(fragment) {
		return nil, ErrInvalidFragment
	}

	page, err := goquery.NewDocumentFromReader(strings.NewReader(Shell(fragment)))
	if err != nil {
		return nil, err
	}
	page.Find("script, style, noscript, template").Remove()

	b := &builder{space: true}
	page.Find("body").Each(func(_ int, body *goquery.Selection) {
		for _, n := range body.Nodes {
			b.children(n, inline{})
		}
	})
	return b.finish(), nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// parsePlain strips every tag and keeps the text as a single unstyled span.
func parsePlain(fragment string) (*Document, error) {
	if !utf8.ValidString(fragment) {
		return nil, ErrInvalidFragment
	}
	b := &builder{space: true}
	b.text(html.UnescapeString(tagPattern.ReplaceAllString(fragment, "")), inline{})
	return b.finish(), nil
}

type inline struct {
	italic    bool
	bold      bool
	underline bool
	faint     bool
	smallCaps bool
}

// builder collapses whitespace the way a browser does: runs become one
// space, and spaces at line edges are dropped.
type builder struct {
	spans []Span
	space bool
}

func (b *builder) children(n *xhtml.Node, st inline) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.node(c, st)
	}
}

func (b *builder) node(n *xhtml.Node, st inline) {
	switch n.Type {
	case xhtml.TextNode:
		b.text(n.Data, st)
		return
	case xhtml.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.I, atom.Em, atom.Cite, atom.Var, atom.Dfn:
		st.italic = true
	case atom.B, atom.Strong:
		st.bold = true
	case atom.U, atom.Ins:
		st.underline = true
	case atom.Sup, atom.Sub, atom.Small:
		st.faint = true
	case atom.Br:
		b.lineBreak()
		return
	case atom.Img:
		if alt := attr(n, "alt"); alt != "" {
			b.text("["+alt+"]", st)
		}
		return
	case atom.P, atom.Div, atom.Blockquote, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		b.block()
		b.children(n, st)
		b.block()
		return
	}

	if isSmallCaps(n) {
		st.smallCaps = true
	}
	b.children(n, st)
}

func (b *builder) text(s string, st inline) {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !b.space {
				sb.WriteByte(' ')
				b.space = true
			}
			continue
		}
		b.space = false
		sb.WriteRune(r)
	}

	t := sb.String()
	if t == "" {
		return
	}
	if st.smallCaps {
		t = strings.ToUpper(t)
	}

	if n := len(b.spans); n > 0 && b.spans[n-1].sameStyle(st) {
		b.spans[n-1].Text += t
		return
	}
	b.spans = append(b.spans, Span{
		Text:      t,
		Italic:    st.italic,
		Bold:      st.bold,
		Underline: st.underline,
		Faint:     st.faint,
	})
}

func (b *builder) lineBreak() {
	b.trimTrailing()
	b.spans = append(b.spans, Span{Break: true})
	b.space = true
}

// block breaks the line unless it is already at a line start.
func (b *builder) block() {
	if n := len(b.spans); n == 0 || b.spans[n-1].Break {
		return
	}
	b.lineBreak()
}

func (b *builder) trimTrailing() {
	for n := len(b.spans); n > 0; n = len(b.spans) {
		last := &b.spans[n-1]
		if last.Break {
			return
		}
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			return
		}
		b.spans = b.spans[:n-1]
	}
}

func (b *builder) finish() *Document {
	b.trimTrailing()
	for len(b.spans) > 0 && b.spans[len(b.spans)-1].Break {
		b.spans = b.spans[:len(b.spans)-1]
		b.trimTrailing()
	}
	return &Document{Spans: b.spans}
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isSmallCaps(n *xhtml.Node) bool {
	for _, class := range strings.Fields(attr(n, "class")) {
		if class == "sc" || class == "small-caps" {
			return true
		}
	}
	return strings.Contains(strings.ReplaceAll(attr(n, "style"), " ", ""), "font-variant:small-caps")
}
