package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"versesabout/internal/api"
	"versesabout/internal/logging"
	"versesabout/internal/render"
	"versesabout/internal/theme"
	"versesabout/internal/verse"
)

// title, tabs, header border, status, help
const detailChrome = 5

const unmeasuredMarker = "(layout not measured)"

type detailScreen struct {
	id       uint64
	state    *verse.Detail
	surfaces []*render.Surface
	viewport viewport.Model
	spinner  spinner.Model
	styles   theme.Styles
	fetching bool
	cancel   context.CancelFunc

	// loadGen guards document loads, measureGen guards layout polls.
	loadGen    uint64
	measureGen uint64
	interval   time.Duration
	maxPolls   int

	logger *logging.Logger
}

func newDetailScreen(id uint64, t api.TopicSummary, tr api.Translation, opts Options, styles theme.Styles, logger *logging.Logger) *detailScreen {
	d := &detailScreen{
		id:       id,
		state:    verse.NewDetail(t.Slug, t.Name, tr, logger),
		viewport: viewport.New(0, 0),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		interval: opts.SettleInterval,
		maxPolls: opts.MaxPolls,
		logger:   logger.WithComponent("detail-screen").With("slug", t.Slug),
	}
	d.applyStyles(styles)
	return d
}

func (d *detailScreen) appear(client *api.Client) tea.Cmd {
	d.stop()
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.fetching = true
	token := d.state.Begin()
	d.logger.Debug("fetching verses", "token", token)
	return tea.Batch(fetchDetail(ctx, client, d.id, token, d.state.Slug()), d.spinner.Tick)
}

// stop cancels an in-flight fetch. Called when the screen is dismissed.
func (d *detailScreen) stop() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *detailScreen) applyStyles(s theme.Styles) {
	d.styles = s
	d.spinner.Style = s.Title
}

func (d *detailScreen) setSize(width, height int) {
	h := height - detailChrome
	if h < 1 {
		h = 1
	}
	d.viewport.Width = width
	d.viewport.Height = h
}

func (d *detailScreen) tick(msg spinner.TickMsg) tea.Cmd {
	if !d.fetching {
		return nil
	}
	var cmd tea.Cmd
	d.spinner, cmd = d.spinner.Update(msg)
	return cmd
}

func (d *detailScreen) detailLoaded(msg detailLoadedMsg, r *render.Renderer) tea.Cmd {
	if !d.state.Current(msg.token) {
		d.logger.Debug("dropping stale verses response", "token", msg.token)
		return nil
	}
	d.fetching = false
	d.stop()

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return nil
		}
		d.state.Fail(msg.token, msg.err)
		return nil
	}
	if !d.state.Apply(msg.token, msg.detail) {
		return nil
	}

	d.surfaces = make([]*render.Surface, len(d.state.Entries()))
	for i := range d.surfaces {
		d.surfaces[i] = render.NewSurface(d.maxPolls)
	}
	d.viewport.GotoTop()
	return d.reload(r)
}

// reload pushes the current translation's HTML into every surface. No
// network request is made.
func (d *detailScreen) reload(r *render.Renderer) tea.Cmd {
	if !d.state.Present() {
		return nil
	}
	d.loadGen++
	for _, s := range d.surfaces {
		s.Load()
	}
	d.refresh()
	return loadDocuments(r, d.id, d.loadGen, d.state.Texts())
}

func (d *detailScreen) documentsLoaded(msg documentsLoadedMsg) tea.Cmd {
	if msg.gen != d.loadGen || len(msg.results) != len(d.surfaces) {
		d.logger.Debug("dropping stale documents", "gen", msg.gen, "current", d.loadGen)
		return nil
	}
	for i, res := range msg.results {
		if res.Err != nil {
			d.logger.Warn("verse markup rejected", "index", i, "error", res.Err)
		}
		if d.surfaces[i].LoadFinished(res.Doc, res.Err) {
			d.surfaces[i].BeginMeasure()
		}
	}
	d.refresh()
	return d.schedule()
}

// relayout remeasures every loaded surface, e.g. after a resize.
func (d *detailScreen) relayout() tea.Cmd {
	for _, s := range d.surfaces {
		s.BeginMeasure()
	}
	return d.schedule()
}

func (d *detailScreen) schedule() tea.Cmd {
	d.measureGen++
	for _, s := range d.surfaces {
		if s.State() == render.StateMeasurementPending {
			return pollSurfaces(d.interval, d.id, d.measureGen)
		}
	}
	return nil
}

func (d *detailScreen) poll(msg surfacePollMsg, r *render.Renderer, width int) tea.Cmd {
	if msg.gen != d.measureGen {
		return nil
	}
	pending := false
	for i, s := range d.surfaces {
		if s.Poll(r, width) {
			pending = true
			continue
		}
		if s.State() == render.StateMeasureFailed {
			d.logger.Warn("verse layout not measured", "index", i, "height", s.Height())
		}
	}
	d.refresh()
	if pending {
		return pollSurfaces(d.interval, d.id, d.measureGen)
	}
	return nil
}

// setTranslation switches the displayed translation and reloads the surfaces.
func (d *detailScreen) setTranslation(t api.Translation, r *render.Renderer) tea.Cmd {
	if !d.state.SetTranslation(t) {
		return nil
	}
	d.logger.Info("translation switched", "translation", t.String())
	return d.reload(r)
}

func (d *detailScreen) toggle(r *render.Renderer) tea.Cmd {
	t := d.state.Toggle()
	d.logger.Info("translation switched", "translation", t.String())
	return d.reload(r)
}

func (d *detailScreen) update(msg tea.KeyMsg, keys keyMap, r *render.Renderer) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Toggle):
		return d.toggle(r)
	case key.Matches(msg, keys.KJV):
		return d.setTranslation(api.KJV, r)
	case key.Matches(msg, keys.ESV):
		return d.setTranslation(api.ESV, r)
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

func (d *detailScreen) refresh() {
	d.viewport.SetContent(d.content())
}

func (d *detailScreen) content() string {
	entries := d.state.Entries()
	blocks := make([]string, 0, len(entries))
	for i, e := range entries {
		var b strings.Builder
		b.WriteString(d.styles.Reference.Render(e.Reference))
		if i < len(d.surfaces) {
			s := d.surfaces[i]
			if v := s.View(); v != "" {
				b.WriteString("\n")
				b.WriteString(v)
			}
			if s.State() == render.StateMeasureFailed {
				b.WriteString("\n")
				b.WriteString(d.styles.Unmeasured.Render(unmeasuredMarker))
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func (d *detailScreen) tabs() string {
	var tabs []string
	for _, t := range api.Translations() {
		if t == d.state.Translation() {
			tabs = append(tabs, d.styles.ActiveTab.Render(t.String()))
		} else {
			tabs = append(tabs, d.styles.Tab.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (d *detailScreen) status() string {
	switch {
	case d.fetching && !d.state.Present():
		return d.styles.Status.Render(d.spinner.View() + " Loading verses...")
	case d.state.Err() != nil && !d.state.Present():
		return d.styles.Error.Render("Could not load verses.")
	case d.state.Present() && len(d.state.Entries()) == 0:
		return d.styles.Status.Render("No verses for this topic.")
	}
	return ""
}

func (d *detailScreen) view() string {
	header := d.styles.Header.Render(d.styles.Title.Render(d.state.Name()) + "\n" + d.tabs())
	return header + "\n" + d.viewport.View() + "\n" + d.status()
}
