package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"versesabout/internal/api"
	"versesabout/internal/logging"
	"versesabout/internal/render"
	"versesabout/internal/theme"
)

// Options configures the TUI. Zero values fall back to defaults.
type Options struct {
	Theme          theme.Theme
	Translation    api.Translation
	ContentWidth   int
	RenderMode     render.Mode
	SettleInterval time.Duration
	MaxPolls       int
	PlainHeight    int
	Locale         language.Tag
}

const (
	defaultContentWidth   = 80
	defaultSettleInterval = 50 * time.Millisecond
	defaultMaxPolls       = 20
	defaultPlainHeight    = 3
)

func (o Options) withDefaults() Options {
	if o.Theme.Key == "" {
		o.Theme = theme.Get("")
	}
	if o.ContentWidth <= 0 {
		o.ContentWidth = defaultContentWidth
	}
	if o.SettleInterval <= 0 {
		o.SettleInterval = defaultSettleInterval
	}
	if o.MaxPolls < 1 {
		o.MaxPolls = defaultMaxPolls
	}
	if o.PlainHeight < 1 {
		o.PlainHeight = defaultPlainHeight
	}
	return o
}

// Model is the root Bubble Tea model. The list screen lives for the whole
// program; a detail screen is pushed on top of it when a topic is opened.
type Model struct {
	client   *api.Client
	logger   *logging.Logger
	opts     Options
	styles   theme.Styles
	renderer *render.Renderer
	keys     keyMap
	help     help.Model
	list     *listScreen
	detail   *detailScreen
	screens  uint64
	width    int
	height   int
	ready    bool
}

func NewModel(client *api.Client, logger *logging.Logger, opts Options) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	opts = opts.withDefaults()

	m := Model{
		client: client,
		logger: logger.WithComponent("ui"),
		opts:   opts,
		renderer: render.New(render.Options{
			Mode:        opts.RenderMode,
			PlainHeight: opts.PlainHeight,
		}),
		keys: defaultKeyMap(),
		help: help.New(),
		list: newListScreen(opts.Locale, logger),
	}
	m.setTheme(opts.Theme)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.list.appear(m.client)
}

func (m *Model) setTheme(t theme.Theme) {
	m.opts.Theme = t
	m.styles = theme.NewStyles(t)
	m.renderer.SetBase(m.styles.Verse)
	m.help.Styles.ShortKey = m.styles.Title
	m.help.Styles.ShortDesc = m.styles.Help
	m.help.Styles.ShortSeparator = m.styles.Help
	m.list.applyStyles(m.styles)
	if m.detail != nil {
		m.detail.applyStyles(m.styles)
	}
}

// contentWidth is the column budget for verse text.
func (m Model) contentWidth() int {
	w := m.width - 2
	if w > m.opts.ContentWidth {
		w = m.opts.ContentWidth
	}
	if w < 0 {
		return 0
	}
	return w
}

func (m Model) listRows() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - listChrome
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) ownsScreen(id uint64) bool {
	return m.detail != nil && m.detail.id == id
}

func (m *Model) openDetail(t api.TopicSummary) tea.Cmd {
	m.screens++
	m.logger.Info("opening topic", "slug", t.Slug)
	d := newDetailScreen(m.screens, t, m.opts.Translation, m.opts, m.styles, m.logger)
	d.setSize(m.width, m.height)
	m.detail = d
	return d.appear(m.client)
}

// closeDetail dismisses the detail screen and refetches the list.
func (m *Model) closeDetail() tea.Cmd {
	m.detail.stop()
	m.logger.Debug("closing topic", "slug", m.detail.state.Slug())
	m.detail = nil
	return m.list.appear(m.client)
}

func (m *Model) quit() tea.Cmd {
	m.list.stop()
	if m.detail != nil {
		m.detail.stop()
	}
	return tea.Quit
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.list.setWidth(msg.Width)
		m.list.clamp(m.listRows())
		if m.detail != nil {
			m.detail.setSize(msg.Width, msg.Height)
			return m, m.detail.relayout()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, m.quit()
		}
		if m.detail != nil {
			switch {
			case key.Matches(msg, m.keys.Back):
				return m, m.closeDetail()
			case key.Matches(msg, m.keys.Quit):
				return m, m.quit()
			}
			return m, m.detail.update(msg, m.keys, m.renderer)
		}
		selected, cmd := m.list.update(msg, m.keys, m.listRows())
		if selected != nil {
			return m, m.openDetail(*selected)
		}
		return m, cmd

	case tea.MouseMsg:
		if m.detail != nil {
			var cmd tea.Cmd
			m.detail.viewport, cmd = m.detail.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		cmds := []tea.Cmd{m.list.tick(msg)}
		if m.detail != nil {
			cmds = append(cmds, m.detail.tick(msg))
		}
		return m, tea.Batch(cmds...)

	case topicsLoadedMsg:
		m.list.topicsLoaded(msg)
		m.list.clamp(m.listRows())
		return m, nil

	case detailLoadedMsg:
		if !m.ownsScreen(msg.screen) {
			return m, nil
		}
		return m, m.detail.detailLoaded(msg, m.renderer)

	case documentsLoadedMsg:
		if !m.ownsScreen(msg.screen) {
			return m, nil
		}
		return m, m.detail.documentsLoaded(msg)

	case surfacePollMsg:
		if !m.ownsScreen(msg.screen) {
			return m, nil
		}
		return m, m.detail.poll(msg, m.renderer, m.contentWidth())

	case ThemeChangedMsg:
		m.logger.Info("theme changed", "theme", msg.Theme.Key)
		m.setTheme(msg.Theme)
		if m.detail != nil {
			return m, m.detail.relayout()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.detail != nil {
		return m.detail.view() + "\n" + m.help.View(detailHelp{m.keys})
	}
	return m.list.view(m.styles, m.width, m.listRows()) + "\n\n" + m.help.View(listHelp{m.keys})
}
