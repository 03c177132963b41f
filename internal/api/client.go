package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Origins the app knows about. Production is the default.
const (
	ProductionBaseURL  = "https://bible-verses-about.vercel.app"
	DevelopmentBaseURL = "http://localhost:3007"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = ProductionBaseURL
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// TopicsURL is the endpoint listing every topic.
func (c *Client) TopicsURL() string {
	return c.baseURL + "/slugs-name.json"
}

// TopicURL is the endpoint for one topic's verses. The slug is used as-is
// for the final path segment.
func (c *Client) TopicURL(slug string) string {
	return c.baseURL + "/verses-json/" + slug + ".json"
}

// GetTopics fetches the full topic list in source order.
func (c *Client) GetTopics(ctx context.Context) ([]TopicSummary, error) {
	var wire []topicWire
	if err := c.get(ctx, "topics", c.TopicsURL(), &wire); err != nil {
		return nil, err
	}

	topics := make([]TopicSummary, 0, len(wire))
	for i, w := range wire {
		t, err := w.summary()
		if err != nil {
			return nil, &FetchError{Op: "topics", URL: c.TopicsURL(), Kind: KindDecode, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		topics = append(topics, t)
	}
	return topics, nil
}

// GetTopicDetail fetches the verses for one topic.
func (c *Client) GetTopicDetail(ctx context.Context, slug string) (*TopicDetail, error) {
	if slug == "" {
		return nil, fmt.Errorf("empty slug")
	}
	u := c.TopicURL(slug)

	var wire detailWire
	if err := c.get(ctx, "verses", u, &wire); err != nil {
		return nil, err
	}

	detail, err := wire.detail()
	if err != nil {
		return nil, &FetchError{Op: "verses", URL: u, Kind: KindDecode, Err: err}
	}
	return detail, nil
}

func (c *Client) get(ctx context.Context, op, rawURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &FetchError{Op: op, URL: rawURL, Kind: KindNetwork, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, URL: rawURL, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &FetchError{
			Op:         op,
			URL:        rawURL,
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Op: op, URL: rawURL, Kind: KindNetwork, Err: err}
	}
	// Unmarshal rejects trailing data; null would silently leave target empty.
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return &FetchError{Op: op, URL: rawURL, Kind: KindDecode, Err: errNullBody}
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &FetchError{Op: op, URL: rawURL, Kind: KindDecode, Err: err}
	}
	return nil
}
