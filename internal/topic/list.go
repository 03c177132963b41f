// Package topic holds the state behind the topic list screen: the fetched
// collection, the live search query and the filtered view derived from them.
package topic

import (
	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"versesabout/internal/api"
	"versesabout/internal/logging"
)

// List is owned by the list screen. Fetches are tracked with a generation
// token so that a response belonging to an earlier appearance of the screen
// is dropped instead of overwriting newer state.
type List struct {
	topics  []api.TopicSummary
	query   string
	matcher *search.Matcher
	gen     uint64
	loaded  bool
	lastErr error
	logger  *logging.Logger
}

func NewList(tag language.Tag, logger *logging.Logger) *List {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &List{
		matcher: NewMatcher(tag),
		logger:  logger.WithComponent("list"),
	}
}

// Begin starts a new fetch and returns its token. Any earlier token is stale
// from now on.
func (l *List) Begin() uint64 {
	l.gen++
	return l.gen
}

// Current reports whether token belongs to the latest fetch.
func (l *List) Current(token uint64) bool {
	return token == l.gen
}

// Apply replaces the collection wholesale. It returns false and changes
// nothing when the token is stale.
func (l *List) Apply(token uint64, topics []api.TopicSummary) bool {
	if !l.Current(token) {
		l.logger.Debug("dropping stale topic list", "token", token, "current", l.gen)
		return false
	}
	l.topics = topics
	l.loaded = true
	l.lastErr = nil
	l.logger.Info("topic list loaded", "count", len(topics))
	return true
}

// Fail records a fetch failure. The collection is left as it was.
func (l *List) Fail(token uint64, err error) {
	if !l.Current(token) {
		return
	}
	l.lastErr = err
	l.logger.Error("failed to fetch topic list", "error", err)
}

// SetQuery updates the search string.
func (l *List) SetQuery(q string) {
	l.query = q
}

func (l *List) Query() string {
	return l.query
}

// All returns the full collection in source order.
func (l *List) All() []api.TopicSummary {
	return l.topics
}

// Filtered is the collection narrowed by the current query.
func (l *List) Filtered() []api.TopicSummary {
	return Filter(l.matcher, l.topics, l.query)
}

// Loaded reports whether any fetch has succeeded yet.
func (l *List) Loaded() bool {
	return l.loaded
}

// Err is the most recent fetch failure, cleared by a successful Apply.
func (l *List) Err() error {
	return l.lastErr
}
