// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lethanhduc/bookwise/pkg/slug"
)

/*
TestFrom verifies slug derivation over representative post titles.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "The Art of Reading Slowly", "the-art-of-reading-slowly"},
		{"punctuation", "Why Read? Because: Books!", "why-read-because-books"},
		{"accents", "Les Misérables — A Résumé", "les-miserables-a-resume"},
		{"consecutive_separators", "one  --  two", "one-two"},
		{"leading_trailing", "  hello world  ", "hello-world"},
		{"digits", "10 Books for 2026", "10-books-for-2026"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
