// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

/*
Package catalog defines the normalized book model shared by every source.

Books arrive from three places: the curated local collection, the Project
Gutenberg catalog (via Gutendex), and the generated modern catalog. All three
are normalized into [Book] so the aggregation and presentation layers never
care where a record came from. Provenance is recoverable from the identifier
alone; see [SourceOf].

Identifier convention:

  - "gutenberg-{id}": Fetched from the Gutendex API, read only.
  - "modern-{index}": Deterministically generated, read only.
  - anything else: Curated local record, mutable by admins.
*/
package catalog

import (
	"strings"
	"time"
)

// Source identifies where a book record originates.
type Source string

// Book sources. SourceAll is a filter value only and never appears on a record.
const (
	SourceAll       Source = "all"
	SourceLocal     Source = "local"
	SourceGutenberg Source = "gutenberg"
	SourceModern    Source = "modern"
)

// Identifier prefixes that encode provenance.
const (
	PrefixGutenberg = "gutenberg-"
	PrefixModern    = "modern-"
)

// ParseSource interprets a source filter from a query string.
// Empty input means no filter and maps to SourceAll.
func ParseSource(raw string) (Source, bool) {
	switch Source(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return SourceAll, true
	case SourceAll:
		return SourceAll, true
	case SourceLocal:
		return SourceLocal, true
	case SourceGutenberg:
		return SourceGutenberg, true
	case SourceModern:
		return SourceModern, true
	default:
		return "", false
	}
}

// SourceOf derives a book's provenance from its identifier prefix.
func SourceOf(id string) Source {
	switch {
	case strings.HasPrefix(id, PrefixGutenberg):
		return SourceGutenberg
	case strings.HasPrefix(id, PrefixModern):
		return SourceModern
	default:
		return SourceLocal
	}
}

// CanMutate reports whether a book record accepts writes.
// Only curated local records are mutable; external catalog records are
// projections and any update or delete against them must be rejected.
func CanMutate(id string) bool {
	return SourceOf(id) == SourceLocal
}

// Content section kinds for long-form book and blog content.
const (
	SectionText  = "text"
	SectionImage = "image"
	SectionQuote = "quote"
)

// ContentSection is one block of long-form rich content.
//
// Type selects which fields are meaningful: "text" uses Text, "image" uses
// URL and Caption, "quote" uses Text and Attribution.
type ContentSection struct {
	Type        string `json:"type"`
	Text        string `json:"text,omitempty"`
	URL         string `json:"url,omitempty"`
	Caption     string `json:"caption,omitempty"`
	Attribution string `json:"attribution,omitempty"`
}

// Author is the writer attached to a book record. Authors are owned by their
// book; duplicates by name across books are tolerated.
type Author struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Bio      string `json:"bio,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Book is the normalized record every source resolves to.
//
// Rating is clamped to [0,5] by every producer. Genres is kept non-empty for
// display purposes but not enforced as an invariant.
type Book struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Author          Author           `json:"author"`
	CoverURL        string           `json:"cover_url"`
	Summary         string           `json:"summary,omitempty"`
	ShortSummary    string           `json:"short_summary"`
	RichContent     []ContentSection `json:"rich_content,omitempty"`
	Genres          []string         `json:"genres"`
	Rating          float64          `json:"rating"`
	PageCount       int              `json:"page_count,omitempty"`
	YearPublished   int              `json:"year_published,omitempty"`
	Likes           int              `json:"likes"`
	IsFeatured      bool             `json:"is_featured"`
	IsTrending      bool             `json:"is_trending"`
	AudioSummaryURL string           `json:"audio_summary_url,omitempty"`
	GutenbergID     int              `json:"gutenberg_id,omitempty"`
	DownloadCount   int              `json:"download_count,omitempty"`
	DateAdded       time.Time        `json:"date_added,omitzero"`
	Source          Source           `json:"source"`
}

// WithSource returns the book with its Source field derived from the ID.
func (book Book) WithSource() Book {
	book.Source = SourceOf(book.ID)
	return book
}

// MatchesQuery reports whether the book matches a free-text search.
// Matching is a case-insensitive substring test against title and author name.
func (book Book) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(book.Title), query) ||
		strings.Contains(strings.ToLower(book.Author.Name), query)
}

// HasGenre reports whether the book carries the given genre tag.
// Matching is case-insensitive; an empty genre matches every book.
func (book Book) HasGenre(genre string) bool {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return true
	}
	for _, candidate := range book.Genres {
		if strings.EqualFold(candidate, genre) {
			return true
		}
	}
	return false
}

// ClampRating bounds a rating to the displayable [0,5] range.
func ClampRating(rating float64) float64 {
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}
