// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package gutenberg

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lethanhduc/bookwise/internal/catalog"
	"github.com/lethanhduc/bookwise/pkg/pointer"
)

// Fallback values for missing raw fields. Normalization never fails on
// absent data; every derived field has a substitute.
const (
	fallbackTitle  = "Untitled"
	fallbackAuthor = "Unknown Author"
	fallbackGenre  = "Classic"
	fallbackCover  = "/images/cover-placeholder.jpg"
)

const maxGenres = 3

// normalize converts one raw Gutendex record into the shared catalog model.
func normalize(raw apiBook) catalog.Book {
	author := primaryAuthor(raw.Authors)
	genres := deriveGenres(raw.Subjects, raw.Bookshelves)

	return catalog.Book{
		ID:            catalog.PrefixGutenberg + fmt.Sprintf("%d", raw.ID),
		Title:         firstNonEmpty(strings.TrimSpace(raw.Title), fallbackTitle),
		Author:        author,
		CoverURL:      deriveCover(raw.Formats),
		ShortSummary:  deriveShortSummary(raw.Subjects, author.Name),
		Genres:        genres,
		Rating:        deriveRating(raw.DownloadCount),
		GutenbergID:   raw.ID,
		DownloadCount: raw.DownloadCount,
		Source:        catalog.SourceGutenberg,
	}
}

// primaryAuthor picks the first listed author and reshapes the
// "Lastname, Firstname" convention Gutendex uses into display order.
func primaryAuthor(authors []apiAuthor) catalog.Author {
	if len(authors) == 0 || strings.TrimSpace(authors[0].Name) == "" {
		return catalog.Author{Name: fallbackAuthor}
	}

	name := strings.TrimSpace(authors[0].Name)
	if last, first, found := strings.Cut(name, ","); found {
		name = strings.TrimSpace(first) + " " + strings.TrimSpace(last)
		name = strings.TrimSpace(name)
	}

	return catalog.Author{Name: name, Bio: lifespan(authors[0])}
}

// lifespan renders "1835-1910" style biographical hints when the raw record
// carries the years. Either side may be absent.
func lifespan(author apiAuthor) string {
	birth := pointer.Val(author.BirthYear)
	death := pointer.Val(author.DeathYear)

	switch {
	case birth != 0 && death != 0:
		return fmt.Sprintf("%d-%d", birth, death)
	case birth != 0:
		return fmt.Sprintf("born %d", birth)
	default:
		return ""
	}
}

// deriveCover picks a cover URL from the format map, preferring JPEG, then
// PNG, then any other image MIME type.
func deriveCover(formats map[string]string) string {
	for _, preferred := range []string{"image/jpeg", "image/png"} {
		if coverURL := formats[preferred]; coverURL != "" {
			return coverURL
		}
	}

	for mime, coverURL := range formats {
		if strings.HasPrefix(mime, "image/") && coverURL != "" {
			return coverURL
		}
	}

	return fallbackCover
}

// deriveGenres extracts up to three genre tags from subject and bookshelf
// strings. Each string contributes its leading token, split on "--" or ",",
// capitalized. Duplicates are dropped case-insensitively.
func deriveGenres(subjects []string, bookshelves []string) []string {
	genres := make([]string, 0, maxGenres)
	seen := make(map[string]bool, maxGenres)

	for _, raw := range append(append([]string{}, subjects...), bookshelves...) {
		if len(genres) == maxGenres {
			break
		}

		token := leadingToken(raw)
		if token == "" {
			continue
		}

		key := strings.ToLower(token)
		if seen[key] {
			continue
		}
		seen[key] = true
		genres = append(genres, capitalize(token))
	}

	if len(genres) == 0 {
		genres = append(genres, fallbackGenre)
	}

	return genres
}

// deriveShortSummary builds a one-line description from the top subjects,
// falling back to a generic line when none are usable.
func deriveShortSummary(subjects []string, authorName string) string {
	topics := make([]string, 0, 2)
	for _, subject := range subjects {
		if token := leadingToken(subject); token != "" {
			topics = append(topics, strings.ToLower(token))
		}
		if len(topics) == 2 {
			break
		}
	}

	if len(topics) == 0 {
		return fmt.Sprintf("A classic work by %s.", authorName)
	}

	return fmt.Sprintf("A classic work on %s by %s.", strings.Join(topics, " and "), authorName)
}

// deriveRating maps download popularity onto the displayable [0,5] scale.
// Unknown popularity lands at a neutral midpoint rather than zero.
func deriveRating(downloadCount int) float64 {
	return catalog.ClampRating(3.5 + float64(downloadCount)/10000)
}

// leadingToken returns the first segment of a subject string, split on "--"
// or ",", trimmed.
func leadingToken(raw string) string {
	token := raw
	if head, _, found := strings.Cut(token, "--"); found {
		token = head
	}
	if head, _, found := strings.Cut(token, ","); found {
		token = head
	}
	return strings.TrimSpace(token)
}

// firstNonEmpty returns value unless it is empty, in which case it returns
// fallback.
func firstNonEmpty(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// capitalize upper-cases the first rune of a token.
func capitalize(token string) string {
	runes := []rune(token)
	if len(runes) == 0 {
		return token
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
