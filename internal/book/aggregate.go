// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package book

import (
	"github.com/lethanhduc/bookwise/internal/catalog"
)

/*
Merge composes local and external books into one display list.

Description: Pure function; all I/O happens in the callers. Local books come
first, then external books in their given order. The source filter selects by
id prefix, the query filter matches case-insensitively against title and
author name. De-duplication is keyed on the full prefixed id; cross-source
collisions are impossible by construction because prefixes differ per source.

Parameters:
  - local: []catalog.Book
  - external: []catalog.Book (Already normalized, any mix of sources)
  - source: catalog.Source (SourceAll disables the filter)
  - query: string (Empty disables the filter)

Returns:
  - []catalog.Book: Filtered, de-duplicated, source-annotated list
*/
func Merge(local []catalog.Book, external []catalog.Book, source catalog.Source, query string) []catalog.Book {
	merged := make([]catalog.Book, 0, len(local)+len(external))
	seen := make(map[string]bool, len(local)+len(external))

	appendMatching := func(books []catalog.Book) {
		for _, candidate := range books {
			candidate = candidate.WithSource()

			if source != catalog.SourceAll && candidate.Source != source {
				continue
			}
			if !candidate.MatchesQuery(query) {
				continue
			}
			if seen[candidate.ID] {
				continue
			}

			seen[candidate.ID] = true
			merged = append(merged, candidate)
		}
	}

	appendMatching(local)
	appendMatching(external)

	return merged
}

// filterGenre keeps the books carrying the given genre tag.
// Pure; an empty genre returns the input unchanged.
func filterGenre(books []catalog.Book, genre string) []catalog.Book {
	if genre == "" {
		return books
	}

	kept := make([]catalog.Book, 0, len(books))
	for _, candidate := range books {
		if candidate.HasGenre(genre) {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// pageOf slices one 1-based page out of a full in-memory list.
func pageOf(books []catalog.Book, page int, pageSize int) []catalog.Book {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(books) {
		return []catalog.Book{}
	}

	end := start + pageSize
	if end > len(books) {
		end = len(books)
	}

	return books[start:end]
}
