// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

/*
Package blog implements the editorial blog: admin-curated posts served to
all visitors, addressed by slug.

Posts live in one snapshot collection. Slug and reading time are derived
fields, recomputed on every write so they can never drift from the title
and content they summarize.
*/
package blog

import (
	"strings"
	"time"

	"github.com/lethanhduc/bookwise/internal/catalog"
)

// wordsPerMinute is the reading speed assumed when deriving reading time.
const wordsPerMinute = 200

// Post is one published blog entry.
type Post struct {
	ID            string                   `json:"id"`
	Title         string                   `json:"title"`
	Slug          string                   `json:"slug"`
	Excerpt       string                   `json:"excerpt"`
	Content       string                   `json:"content"`
	AuthorName    string                   `json:"author_name"`
	CoverImage    string                   `json:"cover_image,omitempty"`
	Tags          []string                 `json:"tags"`
	ReadingTime   int                      `json:"reading_time"`
	IsFeatured    bool                     `json:"is_featured"`
	RichContent   []catalog.ContentSection `json:"rich_content,omitempty"`
	PublishedDate time.Time                `json:"published_date"`
	UpdatedAt     time.Time                `json:"updated_at,omitzero"`
}

// CreatePostInput is the admin payload for publishing a post.
type CreatePostInput struct {
	Title       string                   `json:"title"`
	Excerpt     string                   `json:"excerpt"`
	Content     string                   `json:"content"`
	AuthorName  string                   `json:"author_name"`
	CoverImage  string                   `json:"cover_image,omitempty"`
	Tags        []string                 `json:"tags"`
	IsFeatured  bool                     `json:"is_featured"`
	RichContent []catalog.ContentSection `json:"rich_content,omitempty"`
}

// UpdatePostInput is the admin payload for editing a post.
// Nil pointer fields are left unchanged.
type UpdatePostInput struct {
	Title       *string                   `json:"title,omitempty"`
	Excerpt     *string                   `json:"excerpt,omitempty"`
	Content     *string                   `json:"content,omitempty"`
	AuthorName  *string                   `json:"author_name,omitempty"`
	CoverImage  *string                   `json:"cover_image,omitempty"`
	Tags        *[]string                 `json:"tags,omitempty"`
	IsFeatured  *bool                     `json:"is_featured,omitempty"`
	RichContent *[]catalog.ContentSection `json:"rich_content,omitempty"`
}

// readingTime derives the reading estimate in whole minutes, rounded up.
// Empty content reads in zero minutes.
func readingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
