// Package verse holds the state behind the verse detail screen.
package verse

import (
	"versesabout/internal/api"
	"versesabout/internal/logging"
)

// Detail owns one topic's verses while its screen is open. The verses are
// absent until the first successful fetch and are replaced wholesale.
type Detail struct {
	slug        string
	name        string
	detail      *api.TopicDetail
	translation api.Translation
	gen         uint64
	lastErr     error
	logger      *logging.Logger
}

func NewDetail(slug, name string, translation api.Translation, logger *logging.Logger) *Detail {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Detail{
		slug:        slug,
		name:        name,
		translation: translation,
		logger:      logger.WithComponent("detail").With("slug", slug),
	}
}

func (d *Detail) Slug() string { return d.slug }
func (d *Detail) Name() string { return d.name }

// Begin starts a fetch and returns its token.
func (d *Detail) Begin() uint64 {
	d.gen++
	return d.gen
}

func (d *Detail) Current(token uint64) bool {
	return token == d.gen
}

// Apply stores a fetched detail. Stale tokens and nil values are ignored.
func (d *Detail) Apply(token uint64, detail *api.TopicDetail) bool {
	if !d.Current(token) || detail == nil {
		return false
	}
	d.detail = detail
	d.lastErr = nil
	d.logger.Info("verses loaded", "count", len(detail.Verses))
	return true
}

// Fail logs the error and leaves the detail as it was.
func (d *Detail) Fail(token uint64, err error) {
	if !d.Current(token) {
		return
	}
	d.lastErr = err
	d.logger.Error("failed to fetch verses", "error", err)
}

func (d *Detail) Err() error {
	return d.lastErr
}

// Present reports whether verses have been loaded.
func (d *Detail) Present() bool {
	return d.detail != nil
}

// Entries returns the verses in source order, or nil while absent.
func (d *Detail) Entries() []api.VerseEntry {
	if d.detail == nil {
		return nil
	}
	return d.detail.Verses
}

func (d *Detail) Translation() api.Translation {
	return d.translation
}

// SetTranslation changes the displayed translation and reports whether it
// differed. It never touches the fetched data.
func (d *Detail) SetTranslation(t api.Translation) bool {
	if d.translation == t {
		return false
	}
	d.translation = t
	return true
}

// Toggle flips between KJV and ESV.
func (d *Detail) Toggle() api.Translation {
	if d.translation == api.KJV {
		d.translation = api.ESV
	} else {
		d.translation = api.KJV
	}
	return d.translation
}

// Text returns the HTML of verse i in the current translation.
func (d *Detail) Text(i int) string {
	entries := d.Entries()
	if i < 0 || i >= len(entries) {
		return ""
	}
	return entries[i].Text(d.translation)
}

// Texts returns the current translation's HTML for every verse.
func (d *Detail) Texts() []string {
	entries := d.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text(d.translation)
	}
	return out
}
