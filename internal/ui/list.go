package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"versesabout/internal/api"
	"versesabout/internal/logging"
	"versesabout/internal/theme"
	"versesabout/internal/topic"
)

const (
	listTitle       = "Bible Verses About"
	listSubtitle    = "Lists of Bible verses about thousands of topics"
	listPlaceholder = "Search Bible Verses"

	// lines drawn around the topic rows
	listChrome = 8
)

type listScreen struct {
	state    *topic.List
	input    textinput.Model
	spinner  spinner.Model
	cursor   int
	offset   int
	fetching bool
	cancel   context.CancelFunc
	logger   *logging.Logger
}

func newListScreen(tag language.Tag, logger *logging.Logger) *listScreen {
	ti := textinput.New()
	ti.Placeholder = listPlaceholder
	ti.Prompt = "⌕ "
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	return &listScreen{
		state:   topic.NewList(tag, logger),
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		logger:  logger.WithComponent("list-screen"),
	}
}

// appear refetches the topics. It runs every time the screen is shown,
// including when returning from a detail screen.
func (l *listScreen) appear(client *api.Client) tea.Cmd {
	l.stop()
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.fetching = true
	token := l.state.Begin()
	l.logger.Debug("fetching topics", "token", token)
	return tea.Batch(fetchTopics(ctx, client, token), l.spinner.Tick)
}

// stop cancels an in-flight fetch.
func (l *listScreen) stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *listScreen) applyStyles(s theme.Styles) {
	l.input.PlaceholderStyle = s.Placeholder.UnsetPaddingLeft()
	l.input.PromptStyle = s.Subtitle
	l.input.TextStyle = s.Verse
	l.spinner.Style = s.Title
}

func (l *listScreen) setWidth(width int) {
	w := width - 12
	if w < 10 {
		w = 10
	}
	l.input.Width = w
}

func (l *listScreen) topicsLoaded(msg topicsLoadedMsg) {
	if !l.state.Current(msg.token) {
		l.logger.Debug("dropping stale topics response", "token", msg.token)
		return
	}
	l.fetching = false
	l.stop()
	if msg.err != nil {
		l.state.Fail(msg.token, msg.err)
		return
	}
	l.state.Apply(msg.token, msg.topics)
	l.clamp(0)
}

func (l *listScreen) tick(msg spinner.TickMsg) tea.Cmd {
	if !l.fetching {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

func (l *listScreen) selected() (api.TopicSummary, bool) {
	items := l.state.Filtered()
	if l.cursor < 0 || l.cursor >= len(items) {
		return api.TopicSummary{}, false
	}
	return items[l.cursor], true
}

// update handles keys for the list. It returns the selected topic when the
// user opens one.
func (l *listScreen) update(msg tea.KeyMsg, keys keyMap, rows int) (*api.TopicSummary, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
		l.clamp(rows)
		return nil, nil
	case key.Matches(msg, keys.Down):
		l.cursor++
		l.clamp(rows)
		return nil, nil
	case key.Matches(msg, keys.Open):
		if t, ok := l.selected(); ok {
			return &t, nil
		}
		return nil, nil
	case key.Matches(msg, keys.ClearSearch):
		l.input.SetValue("")
		l.setQuery("", rows)
		return nil, nil
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	if l.input.Value() != l.state.Query() {
		l.setQuery(l.input.Value(), rows)
	}
	return nil, cmd
}

func (l *listScreen) setQuery(q string, rows int) {
	l.state.SetQuery(q)
	l.cursor = 0
	l.offset = 0
	l.clamp(rows)
}

// clamp keeps the cursor on a visible row. rows <= 0 skips scrolling.
func (l *listScreen) clamp(rows int) {
	n := len(l.state.Filtered())
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if rows <= 0 {
		return
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
}

func (l *listScreen) view(s theme.Styles, width, rows int) string {
	var b strings.Builder

	b.WriteString(s.Title.Render(listTitle))
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render(listSubtitle))
	b.WriteString("\n")

	box := s.Search
	if width > 4 {
		box = box.Width(width - 4)
	}
	b.WriteString(box.Render(l.input.View()))
	b.WriteString("\n")

	items := l.state.Filtered()
	switch {
	case l.fetching && !l.state.Loaded():
		b.WriteString(s.Status.Render(l.spinner.View() + " Loading topics..."))
		b.WriteString("\n")
	case l.state.Err() != nil && !l.state.Loaded():
		b.WriteString(s.Error.Render("Could not load topics."))
		b.WriteString("\n")
	case len(items) == 0 && l.state.Loaded():
		b.WriteString(s.Placeholder.Render("No topics match your search."))
		b.WriteString("\n")
	default:
		end := len(items)
		if rows > 0 && l.offset+rows < end {
			end = l.offset + rows
		}
		for i := l.offset; i < end; i++ {
			if i == l.cursor {
				b.WriteString(s.Selected.Render(items[i].Name))
			} else {
				b.WriteString(s.Item.Render(items[i].Name))
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}
