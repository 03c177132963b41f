package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	hits := &atomic.Int64{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func TestNewClientDefaultsToProduction(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, ProductionBaseURL, c.BaseURL())

	c = NewClient("http://localhost:3007/")
	assert.Equal(t, "http://localhost:3007", c.BaseURL())
	assert.Equal(t, "http://localhost:3007/slugs-name.json", c.TopicsURL())
	assert.Equal(t, "http://localhost:3007/verses-json/love.json", c.TopicURL("love"))
}

func TestGetTopics(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/slugs-name.json": `[{"slug":"love","name":"Love"},{"slug":"hope","name":"Hope"},{"slug":"fear-of-god","name":"Fear of God"}]`,
	})

	topics, err := NewClient(srv.URL).GetTopics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []TopicSummary{
		{Slug: "love", Name: "Love"},
		{Slug: "hope", Name: "Hope"},
		{Slug: "fear-of-god", Name: "Fear of God"},
	}, topics)
}

func TestGetTopicsEmptyArray(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"/slugs-name.json": `[]`})

	topics, err := NewClient(srv.URL).GetTopics(context.Background())
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestGetTopicsDecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "truncated", body: `[{"slug":"love","name":"Lo`},
		{name: "object instead of array", body: `{"slug":"love","name":"Love"}`},
		{name: "missing name", body: `[{"slug":"love","name":"Love"},{"slug":"hope"}]`},
		{name: "missing slug", body: `[{"name":"Love"}]`},
		{name: "wrong type", body: `[{"slug":1,"name":"Love"}]`},
		{name: "null", body: `null`},
		{name: "padded null", body: " null\n"},
		{name: "trailing garbage", body: `[{"slug":"love","name":"Love"}] trailing`},
		{name: "second value", body: `[][]`},
		{name: "null record", body: `[null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, map[string]string{"/slugs-name.json": tt.body})

			topics, err := NewClient(srv.URL).GetTopics(context.Background())
			require.Error(t, err)
			assert.Nil(t, topics)
			assert.True(t, errors.Is(err, ErrDecode), "expected decode error, got %v", err)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, KindDecode, fe.Kind)
		})
	}
}

func TestGetTopicsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetTopics(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
	assert.False(t, errors.Is(err, ErrDecode))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindStatus, fe.Kind)
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
}

func TestGetTopicsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).GetTopics(context.Background())
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindNetwork, fe.Kind)
}

func TestGetTopicsCanceled(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{"/slugs-name.json": `[]`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL).GetTopics(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGetTopicDetail(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{
		"/verses-json/love.json": `{"verses":[
			{"verse":"John 3:16","kjv":"<i>For God so loved...</i>","esv":"For God so loved..."},
			{"verse":"1 John 4:8","kjv":"He that loveth not knoweth not God; for God is love.","esv":"Anyone who does not love does not know God, because God is love."}
		]}`,
	})

	detail, err := NewClient(srv.URL).GetTopicDetail(context.Background(), "love")
	require.NoError(t, err)
	require.Len(t, detail.Verses, 2)

	assert.Equal(t, VerseEntry{
		Reference: "John 3:16",
		KJV:       "<i>For God so loved...</i>",
		ESV:       "For God so loved...",
	}, detail.Verses[0])
	assert.Equal(t, "1 John 4:8", detail.Verses[1].Reference)
	assert.Equal(t, "<i>For God so loved...</i>", detail.Verses[0].Text(KJV))
	assert.Equal(t, "For God so loved...", detail.Verses[0].Text(ESV))
}

func TestGetTopicDetailDecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no verses key", body: `{"items":[]}`},
		{name: "missing esv", body: `{"verses":[{"verse":"John 3:16","kjv":"x"}]}`},
		{name: "not json", body: `<html>oops</html>`},
		{name: "null", body: `null`},
		{name: "null verses", body: `{"verses":null}`},
		{name: "trailing garbage", body: `{"verses":[]} x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, map[string]string{"/verses-json/love.json": tt.body})

			detail, err := NewClient(srv.URL).GetTopicDetail(context.Background(), "love")
			require.Error(t, err)
			assert.Nil(t, detail)
			assert.True(t, errors.Is(err, ErrDecode))
		})
	}
}

func TestGetTopicDetailNotFound(t *testing.T) {
	srv, hits := newTestServer(t, nil)

	_, err := NewClient(srv.URL).GetTopicDetail(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
	assert.Equal(t, int64(1), hits.Load())
}

func TestParseTranslation(t *testing.T) {
	tr, err := ParseTranslation(" esv ")
	require.NoError(t, err)
	assert.Equal(t, ESV, tr)

	tr, err = ParseTranslation("KJV")
	require.NoError(t, err)
	assert.Equal(t, KJV, tr)

	_, err = ParseTranslation("NIV")
	assert.Error(t, err)

	assert.Equal(t, "KJV", KJV.String())
	assert.Equal(t, "ESV", ESV.String())
	assert.Equal(t, []Translation{KJV, ESV}, Translations())
}
