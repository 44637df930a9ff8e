// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethanhduc/bookwise/internal/catalog"
)

func twainFixture() (local []catalog.Book, external []catalog.Book) {
	local = []catalog.Book{
		{ID: "local-id-1", Title: "The Gilded Age", Author: catalog.Author{Name: "Mark Twain"}},
	}
	external = []catalog.Book{
		{ID: "gutenberg-74", Title: "The Adventures of Tom Sawyer", Author: catalog.Author{Name: "Mark Twain"}},
		{ID: "gutenberg-76", Title: "Adventures of Huckleberry Finn", Author: catalog.Author{Name: "Mark Twain"}},
	}
	return local, external
}

func TestMergeSourceFilters(t *testing.T) {
	local, external := twainFixture()

	all := Merge(local, external, catalog.SourceAll, "Twain")
	assert.Len(t, all, 3)

	gutenbergOnly := Merge(local, external, catalog.SourceGutenberg, "Twain")
	assert.Len(t, gutenbergOnly, 2)

	localOnly := Merge(local, external, catalog.SourceLocal, "Twain")
	assert.Len(t, localOnly, 1)
}

func TestMergeSearchMatchesTitleAndAuthor(t *testing.T) {
	local, external := twainFixture()

	byTitle := Merge(local, external, catalog.SourceAll, "huckleberry")
	require.Len(t, byTitle, 1)
	assert.Equal(t, "gutenberg-76", byTitle[0].ID)

	byAuthor := Merge(local, external, catalog.SourceAll, "mark twain")
	assert.Len(t, byAuthor, 3)

	noMatch := Merge(local, external, catalog.SourceAll, "austen")
	assert.Empty(t, noMatch)
}

func TestMergeDeduplicatesByID(t *testing.T) {
	local, external := twainFixture()

	// The same external record delivered twice collapses to one entry.
	duplicated := append(external, external[0])
	merged := Merge(local, duplicated, catalog.SourceAll, "")
	assert.Len(t, merged, 3)
}

func TestMergeAnnotatesSource(t *testing.T) {
	local, external := twainFixture()

	merged := Merge(local, external, catalog.SourceAll, "")
	require.Len(t, merged, 3)
	assert.Equal(t, catalog.SourceLocal, merged[0].Source)
	assert.Equal(t, catalog.SourceGutenberg, merged[1].Source)
}

func TestPageOf(t *testing.T) {
	books := make([]catalog.Book, 10)

	assert.Len(t, pageOf(books, 1, 4), 4)
	assert.Len(t, pageOf(books, 3, 4), 2)
	assert.Empty(t, pageOf(books, 4, 4))

	// Page below 1 clamps to the first page.
	assert.Len(t, pageOf(books, 0, 4), 4)
}
