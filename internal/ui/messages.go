package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"versesabout/internal/api"
	"versesabout/internal/render"
	"versesabout/internal/theme"
)

type topicsLoadedMsg struct {
	token  uint64
	topics []api.TopicSummary
	err    error
}

type detailLoadedMsg struct {
	screen uint64
	token  uint64
	detail *api.TopicDetail
	err    error
}

type documentsLoadedMsg struct {
	screen  uint64
	gen     uint64
	results []render.Result
}

type surfacePollMsg struct {
	screen uint64
	gen    uint64
}

// ThemeChangedMsg switches the palette of a running program.
type ThemeChangedMsg struct {
	Theme theme.Theme
}

func fetchTopics(ctx context.Context, client *api.Client, token uint64) tea.Cmd {
	return func() tea.Msg {
		topics, err := client.GetTopics(ctx)
		return topicsLoadedMsg{token: token, topics: topics, err: err}
	}
}

func fetchDetail(ctx context.Context, client *api.Client, screen, token uint64, slug string) tea.Cmd {
	return func() tea.Msg {
		detail, err := client.GetTopicDetail(ctx, slug)
		return detailLoadedMsg{screen: screen, token: token, detail: detail, err: err}
	}
}

func loadDocuments(r *render.Renderer, screen, gen uint64, fragments []string) tea.Cmd {
	return func() tea.Msg {
		return documentsLoadedMsg{screen: screen, gen: gen, results: r.LoadAll(fragments)}
	}
}

// pollSurfaces waits one settle interval before the next layout poll.
func pollSurfaces(interval time.Duration, screen, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return surfacePollMsg{screen: screen, gen: gen}
	})
}
