// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

/*
Package modern generates the synthetic "modern books" catalog.

The catalog is a fixed universe of 5000 records. Each record is a pure
function of the generator's base seed and the record index, so the same
deployment always serves the same catalog and pagination stays consistent
across requests and restarts. Records are cached by index after first
generation to avoid rebuilding hot pages.

Records are assembled from bounded fragment tables (title prefix, noun,
suffix) plus fixed author and genre pools.
*/
package modern

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/lethanhduc/bookwise/internal/catalog"
)

// Universe is the fixed number of synthetic records.
const Universe = 5000

var titlePrefixes = []string{
	"The Art of", "Beyond", "Rethinking", "The Silent", "Letters from",
	"A Brief History of", "The Last", "Chasing", "Inside", "After",
}

var titleNouns = []string{
	"Tomorrow", "the Algorithm", "Glass Cities", "Deep Work", "the Harbor",
	"Small Things", "Distant Shores", "the Startup", "Memory", "Momentum",
}

var titleSuffixes = []string{
	"", "", "", ": A Memoir", ": Essays", " and Other Stories",
	": A Field Guide", " Reconsidered",
}

var authorPool = []string{
	"Maya Linden", "Arthur Okafor", "Sofia Reyes", "Daniel Whitmore",
	"Priya Natarajan", "Jonas Keller", "Amara Diallo", "Elena Vask",
	"Tom Harlan", "Yuki Sanada", "Claire Beaumont", "Omar Haddad",
}

var genrePool = []string{
	"Self-Help", "Business", "Science", "Technology", "Memoir",
	"Psychology", "Fiction", "History", "Productivity", "Philosophy",
}

var summaryTemplates = []string{
	"A sharp, contemporary take on %s from %s.",
	"%s distilled into a practical, readable guide by %s.",
	"An unflinching exploration of %s, told in %s's distinctive voice.",
	"%s examined through stories, research, and hard-won lessons by %s.",
}

// Generator produces the synthetic catalog.
type Generator struct {
	baseSeed int64

	mu    sync.RWMutex
	cache map[int]catalog.Book
}

// NewGenerator constructs a generator for a given base seed. The same seed
// always yields the same 5000-record catalog.
func NewGenerator(baseSeed int64) *Generator {
	return &Generator{
		baseSeed: baseSeed,
		cache:    make(map[int]catalog.Book),
	}
}

/*
Get returns the record at index, generating and caching it on first access.

Parameters:
  - index: int (Position in the universe)

Returns:
  - catalog.Book
  - bool: false when index is outside [0, Universe)
*/
func (generator *Generator) Get(index int) (catalog.Book, bool) {
	if index < 0 || index >= Universe {
		return catalog.Book{}, false
	}

	generator.mu.RLock()
	book, cached := generator.cache[index]
	generator.mu.RUnlock()
	if cached {
		return book, true
	}

	book = generator.build(index)

	generator.mu.Lock()
	generator.cache[index] = book
	generator.mu.Unlock()

	return book, true
}

/*
ByID resolves a "modern-{index}" identifier.

Parameters:
  - id: string

Returns:
  - catalog.Book
  - bool: false when the id is not a valid modern identifier
*/
func (generator *Generator) ByID(id string) (catalog.Book, bool) {
	rawIndex, found := strings.CutPrefix(id, catalog.PrefixModern)
	if !found {
		return catalog.Book{}, false
	}

	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return catalog.Book{}, false
	}

	return generator.Get(index)
}

/*
Page returns one page of the universe.

Parameters:
  - page: int (1-based, clamped to 1)
  - pageSize: int

Returns:
  - []catalog.Book: Records for the page, empty past the end
  - int: Total universe size
*/
func (generator *Generator) Page(page int, pageSize int) ([]catalog.Book, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	start := (page - 1) * pageSize
	if start >= Universe {
		return []catalog.Book{}, Universe
	}

	end := start + pageSize
	if end > Universe {
		end = Universe
	}

	books := make([]catalog.Book, 0, end-start)
	for index := start; index < end; index++ {
		book, _ := generator.Get(index)
		books = append(books, book)
	}

	return books, Universe
}

// build assembles the record at index. Pure function of (baseSeed, index).
func (generator *Generator) build(index int) catalog.Book {
	source := rand.New(rand.NewSource(generator.baseSeed*1_000_003 + int64(index)))

	prefix := titlePrefixes[source.Intn(len(titlePrefixes))]
	noun := titleNouns[source.Intn(len(titleNouns))]
	suffix := titleSuffixes[source.Intn(len(titleSuffixes))]
	title := strings.TrimSpace(prefix + " " + noun + suffix)

	authorName := authorPool[source.Intn(len(authorPool))]

	genreCount := 1 + source.Intn(2)
	genres := make([]string, 0, genreCount)
	seen := make(map[int]bool, genreCount)
	for len(genres) < genreCount {
		pick := source.Intn(len(genrePool))
		if seen[pick] {
			continue
		}
		seen[pick] = true
		genres = append(genres, genrePool[pick])
	}

	template := summaryTemplates[source.Intn(len(summaryTemplates))]
	shortSummary := fmt.Sprintf(template, genres[0], authorName)

	return catalog.Book{
		ID:            fmt.Sprintf("%s%d", catalog.PrefixModern, index),
		Title:         title,
		Author:        catalog.Author{Name: authorName},
		CoverURL:      fmt.Sprintf("https://picsum.photos/seed/bookwise-modern-%d/300/450", index),
		ShortSummary:  shortSummary,
		Genres:        genres,
		Rating:        catalog.ClampRating(3 + float64(source.Intn(21))/10),
		PageCount:     160 + source.Intn(340),
		YearPublished: 1995 + source.Intn(31),
		Source:        catalog.SourceModern,
	}
}
