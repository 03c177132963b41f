package api

import (
	"errors"
	"fmt"
	"strings"
)

// TopicSummary is one entry of the topic list. Slug is unique.
type TopicSummary struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// VerseEntry is a single verse with its text in both translations.
// The text fields are HTML fragments.
type VerseEntry struct {
	Reference string `json:"verse"`
	KJV       string `json:"kjv"`
	ESV       string `json:"esv"`
}

// Text returns the HTML for the given translation.
func (v VerseEntry) Text(t Translation) string {
	if t == ESV {
		return v.ESV
	}
	return v.KJV
}

type TopicDetail struct {
	Verses []VerseEntry `json:"verses"`
}

type Translation int

const (
	KJV Translation = iota
	ESV
)

func (t Translation) String() string {
	switch t {
	case ESV:
		return "ESV"
	default:
		return "KJV"
	}
}

// Translations lists the selectable translations in display order.
func Translations() []Translation {
	return []Translation{KJV, ESV}
}

func ParseTranslation(s string) (Translation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "KJV":
		return KJV, nil
	case "ESV":
		return ESV, nil
	default:
		return KJV, fmt.Errorf("unknown translation %q", s)
	}
}

// The wire types use pointers so that a missing key fails decoding
// instead of silently producing an empty string.

var (
	errMissingField = errors.New("missing field")
	errNullBody     = errors.New("null response body")
)

type topicWire struct {
	Slug *string `json:"slug"`
	Name *string `json:"name"`
}

func (w topicWire) summary() (TopicSummary, error) {
	switch {
	case w.Slug == nil:
		return TopicSummary{}, fmt.Errorf("%w: slug", errMissingField)
	case w.Name == nil:
		return TopicSummary{}, fmt.Errorf("%w: name", errMissingField)
	}
	return TopicSummary{Slug: *w.Slug, Name: *w.Name}, nil
}

type verseWire struct {
	Verse *string `json:"verse"`
	KJV   *string `json:"kjv"`
	ESV   *string `json:"esv"`
}

type detailWire struct {
	Verses *[]verseWire `json:"verses"`
}

func (w detailWire) detail() (*TopicDetail, error) {
	if w.Verses == nil {
		return nil, fmt.Errorf("%w: verses", errMissingField)
	}

	verses := make([]VerseEntry, 0, len(*w.Verses))
	for i, v := range *w.Verses {
		switch {
		case v.Verse == nil:
			return nil, fmt.Errorf("verse %d: %w: verse", i, errMissingField)
		case v.KJV == nil:
			return nil, fmt.Errorf("verse %d: %w: kjv", i, errMissingField)
		case v.ESV == nil:
			return nil, fmt.Errorf("verse %d: %w: esv", i, errMissingField)
		}
		verses = append(verses, VerseEntry{Reference: *v.Verse, KJV: *v.KJV, ESV: *v.ESV})
	}
	return &TopicDetail{Verses: verses}, nil
}
