// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package modern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethanhduc/bookwise/internal/catalog"
)

func TestGeneratorDeterminism(t *testing.T) {
	first := NewGenerator(42)
	second := NewGenerator(42)

	// Identical seeds yield identical catalogs across fresh instances.
	for _, index := range []int{0, 1, 999, Universe - 1} {
		bookFromFirst, ok := first.Get(index)
		require.True(t, ok)
		bookFromSecond, ok := second.Get(index)
		require.True(t, ok)
		assert.Equal(t, bookFromFirst, bookFromSecond, "index=%d", index)
	}

	// Repeated access returns the cached record unchanged.
	again, ok := first.Get(999)
	require.True(t, ok)
	cached, _ := first.Get(999)
	assert.Equal(t, again, cached)
}

func TestGeneratorRecordShape(t *testing.T) {
	generator := NewGenerator(7)

	book, ok := generator.Get(123)
	require.True(t, ok)

	assert.Equal(t, "modern-123", book.ID)
	assert.Equal(t, catalog.SourceModern, book.Source)
	assert.NotEmpty(t, book.Title)
	assert.NotEmpty(t, book.Author.Name)
	assert.NotEmpty(t, book.CoverURL)
	assert.NotEmpty(t, book.ShortSummary)
	assert.NotEmpty(t, book.Genres)
	assert.GreaterOrEqual(t, book.Rating, 0.0)
	assert.LessOrEqual(t, book.Rating, 5.0)
}

func TestGeneratorBounds(t *testing.T) {
	generator := NewGenerator(7)

	_, ok := generator.Get(-1)
	assert.False(t, ok)
	_, ok = generator.Get(Universe)
	assert.False(t, ok)
}

func TestGeneratorByID(t *testing.T) {
	generator := NewGenerator(7)

	book, ok := generator.ByID("modern-42")
	require.True(t, ok)
	direct, _ := generator.Get(42)
	assert.Equal(t, direct, book)

	_, ok = generator.ByID("gutenberg-42")
	assert.False(t, ok)
	_, ok = generator.ByID("modern-abc")
	assert.False(t, ok)
}

func TestGeneratorPage(t *testing.T) {
	generator := NewGenerator(7)

	books, total := generator.Page(1, 32)
	assert.Equal(t, Universe, total)
	require.Len(t, books, 32)
	assert.Equal(t, "modern-0", books[0].ID)
	assert.Equal(t, "modern-31", books[31].ID)

	// Page below 1 clamps to the first page.
	clamped, _ := generator.Page(0, 32)
	assert.Equal(t, books, clamped)

	// Final partial page.
	lastPage, _ := generator.Page(157, 32)
	assert.Len(t, lastPage, Universe-156*32)

	// Past the end.
	empty, _ := generator.Page(158, 32)
	assert.Empty(t, empty)
}
