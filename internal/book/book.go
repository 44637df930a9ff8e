// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

/*
Package book implements the aggregated book catalog.

It composes three sources behind one API surface: the curated local
collection (snapshot-persisted, admin-mutable), the Gutenberg catalog
(fetched per request), and the generated modern catalog. Listing merges
sources with filter and search applied; mutations only ever touch the local
collection.
*/
package book

import (
	"time"
)

// Comment is one reader comment attached to a book.
//
// Comments reference books from any source; the book id is stored as the
// full prefixed identifier so external books can carry comments without
// being persisted themselves.
type Comment struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar,omitempty"`
	Content    string    `json:"content"`
	Likes      int       `json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Like records one user's like of one book. A (book, user) pair appears at
// most once; liking again removes the record (toggle semantics).
type Like struct {
	BookID    string    `json:"book_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBookInput is the admin payload for adding a local book.
type CreateBookInput struct {
	Title           string   `json:"title"`
	AuthorName      string   `json:"author_name"`
	AuthorBio       string   `json:"author_bio,omitempty"`
	CoverURL        string   `json:"cover_url"`
	Summary         string   `json:"summary"`
	ShortSummary    string   `json:"short_summary"`
	Genres          []string `json:"genres"`
	Rating          float64  `json:"rating"`
	PageCount       int      `json:"page_count,omitempty"`
	YearPublished   int      `json:"year_published,omitempty"`
	IsFeatured      bool     `json:"is_featured"`
	IsTrending      bool     `json:"is_trending"`
	AudioSummaryURL string   `json:"audio_summary_url,omitempty"`
}

// UpdateBookInput is the admin payload for editing a local book.
// Nil pointer fields are left unchanged.
type UpdateBookInput struct {
	Title           *string   `json:"title,omitempty"`
	AuthorName      *string   `json:"author_name,omitempty"`
	AuthorBio       *string   `json:"author_bio,omitempty"`
	CoverURL        *string   `json:"cover_url,omitempty"`
	Summary         *string   `json:"summary,omitempty"`
	ShortSummary    *string   `json:"short_summary,omitempty"`
	Genres          *[]string `json:"genres,omitempty"`
	Rating          *float64  `json:"rating,omitempty"`
	PageCount       *int      `json:"page_count,omitempty"`
	YearPublished   *int      `json:"year_published,omitempty"`
	IsFeatured      *bool     `json:"is_featured,omitempty"`
	IsTrending      *bool     `json:"is_trending,omitempty"`
	AudioSummaryURL *string   `json:"audio_summary_url,omitempty"`
}

// AddCommentInput is the payload for posting a comment.
type AddCommentInput struct {
	Content string `json:"content"`
}

// LikeResult reports the outcome of a like toggle.
type LikeResult struct {
	BookID string `json:"book_id"`
	Liked  bool   `json:"liked"`
	Likes  int    `json:"likes"`
}
