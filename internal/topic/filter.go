package topic

import (
	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"versesabout/internal/api"
)

// NewMatcher returns a case-insensitive matcher for the given locale.
func NewMatcher(tag language.Tag) *search.Matcher {
	return search.New(tag, search.IgnoreCase)
}

// Filter returns the topics whose name contains query, ignoring case under
// the matcher's locale. Source order is kept. An empty query returns every
// topic.
func Filter(m *search.Matcher, topics []api.TopicSummary, query string) []api.TopicSummary {
	if query == "" {
		out := make([]api.TopicSummary, len(topics))
		copy(out, topics)
		return out
	}

	pat := m.CompileString(query)
	out := make([]api.TopicSummary, 0, len(topics))
	for _, t := range topics {
		if start, _ := pat.IndexString(t.Name); start >= 0 {
			out = append(out, t)
		}
	}
	return out
}
