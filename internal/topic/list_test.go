package topic

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"versesabout/internal/api"
)

var sample = []api.TopicSummary{
	{Slug: "love", Name: "Love"},
	{Slug: "hope", Name: "Hope"},
	{Slug: "loving-others", Name: "Loving Others"},
	{Slug: "glory", Name: "Glory"},
	{Slug: "faith", Name: "FAITH"},
}

func TestFilter(t *testing.T) {
	m := NewMatcher(language.English)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty returns all in order", query: "", want: []string{"love", "hope", "loving-others", "glory", "faith"}},
		{name: "prefix", query: "lo", want: []string{"love", "loving-others", "glory"}},
		{name: "upper query", query: "LOV", want: []string{"love", "loving-others"}},
		{name: "upper name", query: "aith", want: []string{"faith"}},
		{name: "inner match", query: "others", want: []string{"loving-others"}},
		{name: "no match", query: "zeal", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(m, sample, tt.query)
			slugs := make([]string, 0, len(got))
			for _, s := range got {
				slugs = append(slugs, s.Slug)
			}
			assert.Equal(t, tt.want, slugs)
		})
	}
}

// The filtered view must be exactly the subsequence of names that contain
// the query case-insensitively.
func TestFilterMatchesSubsequence(t *testing.T) {
	m := NewMatcher(language.English)
	for _, q := range []string{"o", "O", "ve", "g", "h", "ith", "x", "Lov", "ORY"} {
		var want []api.TopicSummary
		for _, s := range sample {
			if strings.Contains(strings.ToLower(s.Name), strings.ToLower(q)) {
				want = append(want, s)
			}
		}
		got := Filter(m, sample, q)
		if len(want) == 0 {
			assert.Empty(t, got, "query %q", q)
			continue
		}
		assert.Equal(t, want, got, "query %q", q)
	}
}

func TestFilterDoesNotAliasSource(t *testing.T) {
	m := NewMatcher(language.English)
	out := Filter(m, sample, "")
	out[0].Name = "changed"
	assert.Equal(t, "Love", sample[0].Name)
}

func TestListScenario(t *testing.T) {
	l := NewList(language.English, nil)
	assert.Empty(t, l.Filtered())

	token := l.Begin()
	require.True(t, l.Apply(token, []api.TopicSummary{
		{Slug: "love", Name: "Love"},
		{Slug: "hope", Name: "Hope"},
	}))

	l.SetQuery("lo")
	assert.Equal(t, "lo", l.Query())
	assert.Equal(t, []api.TopicSummary{{Slug: "love", Name: "Love"}}, l.Filtered())

	l.SetQuery("")
	assert.Len(t, l.Filtered(), 2)
	assert.True(t, l.Loaded())
}

func TestListFailureKeepsState(t *testing.T) {
	l := NewList(language.English, nil)

	first := l.Begin()
	l.Apply(first, sample)

	second := l.Begin()
	l.Fail(second, errors.New("decode failed"))

	assert.Equal(t, sample, l.All())
	assert.EqualError(t, l.Err(), "decode failed")

	third := l.Begin()
	l.Apply(third, sample[:1])
	assert.NoError(t, l.Err())
}

func TestListDropsStaleResults(t *testing.T) {
	l := NewList(language.English, nil)

	stale := l.Begin()
	fresh := l.Begin()

	assert.False(t, l.Current(stale))
	assert.True(t, l.Apply(fresh, sample[:2]))
	assert.False(t, l.Apply(stale, sample))
	assert.Equal(t, sample[:2], l.All())

	l.Fail(stale, errors.New("late"))
	assert.NoError(t, l.Err())
}
