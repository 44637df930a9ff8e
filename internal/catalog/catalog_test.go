// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceOf(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want Source
	}{
		{name: "gutenberg prefix", id: "gutenberg-76", want: SourceGutenberg},
		{name: "modern prefix", id: "modern-42", want: SourceModern},
		{name: "uuid is local", id: "0198c5f2-b27e-7cc3-a1ff-0242ac120002", want: SourceLocal},
		{name: "empty is local", id: "", want: SourceLocal},
		{name: "prefix must match exactly", id: "guten-76", want: SourceLocal},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, SourceOf(testCase.id))
		})
	}
}

func TestCanMutate(t *testing.T) {
	assert.True(t, CanMutate("0198c5f2-b27e-7cc3-a1ff-0242ac120002"))
	assert.False(t, CanMutate("gutenberg-76"))
	assert.False(t, CanMutate("modern-0"))
}

func TestHasGenre(t *testing.T) {
	book := Book{Genres: []string{"Memoir", "Essays"}}

	assert.True(t, book.HasGenre(""))
	assert.True(t, book.HasGenre("memoir"))
	assert.True(t, book.HasGenre(" Essays "))
	assert.False(t, book.HasGenre("Science"))
	assert.True(t, Book{}.HasGenre(""))
	assert.False(t, Book{}.HasGenre("Memoir"))
}

func TestParseSource(t *testing.T) {
	testCases := []struct {
		raw    string
		want   Source
		wantOK bool
	}{
		{raw: "", want: SourceAll, wantOK: true},
		{raw: "all", want: SourceAll, wantOK: true},
		{raw: "Local", want: SourceLocal, wantOK: true},
		{raw: " gutenberg ", want: SourceGutenberg, wantOK: true},
		{raw: "modern", want: SourceModern, wantOK: true},
		{raw: "amazon", wantOK: false},
	}

	for _, testCase := range testCases {
		got, ok := ParseSource(testCase.raw)
		assert.Equal(t, testCase.wantOK, ok, "raw=%q", testCase.raw)
		if testCase.wantOK {
			assert.Equal(t, testCase.want, got, "raw=%q", testCase.raw)
		}
	}
}
