// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package gutenberg

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethanhduc/bookwise/internal/catalog"
	"github.com/lethanhduc/bookwise/internal/platform/apperr"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const searchPage = `{
	"count": 2,
	"next": "https://gutendex.com/books?page=2&search=twain",
	"previous": null,
	"results": [
		{
			"id": 74,
			"title": "The Adventures of Tom Sawyer",
			"authors": [{"name": "Twain, Mark", "birth_year": 1835, "death_year": 1910}],
			"subjects": ["Boys -- Fiction", "Mississippi River Valley -- Fiction"],
			"bookshelves": ["Banned Books"],
			"formats": {"image/jpeg": "https://example.org/74.jpg", "text/plain": "https://example.org/74.txt"},
			"download_count": 12000
		},
		{
			"id": 76,
			"title": "Adventures of Huckleberry Finn",
			"authors": [],
			"subjects": [],
			"bookshelves": [],
			"formats": {},
			"download_count": 0
		}
	]
}`

func TestSearchNormalizesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "twain", request.URL.Query().Get("search"))
		assert.Equal(t, "1", request.URL.Query().Get("page"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(searchPage))
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())

	result, err := client.Search(context.Background(), "twain", 1)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.True(t, result.HasNext)
	assert.False(t, result.HasPrev)
	require.Len(t, result.Books, 2)

	tomSawyer := result.Books[0]
	assert.Equal(t, "gutenberg-74", tomSawyer.ID)
	assert.Equal(t, "Mark Twain", tomSawyer.Author.Name)
	assert.Equal(t, "1835-1910", tomSawyer.Author.Bio)
	assert.Equal(t, "https://example.org/74.jpg", tomSawyer.CoverURL)
	assert.Equal(t, []string{"Boys", "Mississippi River Valley", "Banned Books"}, tomSawyer.Genres)
	assert.Equal(t, catalog.SourceGutenberg, tomSawyer.Source)
	assert.InDelta(t, 4.7, tomSawyer.Rating, 0.001)
}

// Every normalized book carries non-empty display fields even when the raw
// record is missing everything optional.
func TestNormalizeFallbacks(t *testing.T) {
	book := normalize(apiBook{ID: 76})

	assert.Equal(t, "gutenberg-76", book.ID)
	assert.Equal(t, "Untitled", book.Title)
	assert.Equal(t, "Unknown Author", book.Author.Name)
	assert.NotEmpty(t, book.CoverURL)
	assert.NotEmpty(t, book.ShortSummary)
	assert.NotEmpty(t, book.Genres)
	assert.Equal(t, "A classic work by Unknown Author.", book.ShortSummary)
	assert.GreaterOrEqual(t, book.Rating, 0.0)
	assert.LessOrEqual(t, book.Rating, 5.0)
}

func TestNormalizeCoverPreference(t *testing.T) {
	testCases := []struct {
		name    string
		formats map[string]string
		want    string
	}{
		{
			name:    "jpeg preferred over png",
			formats: map[string]string{"image/png": "png.png", "image/jpeg": "jpg.jpg"},
			want:    "jpg.jpg",
		},
		{
			name:    "png when no jpeg",
			formats: map[string]string{"image/png": "png.png", "text/html": "page.html"},
			want:    "png.png",
		},
		{
			name:    "any image when neither",
			formats: map[string]string{"image/webp": "cover.webp"},
			want:    "cover.webp",
		},
		{
			name:    "placeholder when no image at all",
			formats: map[string]string{"text/plain": "book.txt"},
			want:    fallbackCover,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, deriveCover(testCase.formats))
		})
	}
}

func TestDeriveGenresCapsAtThree(t *testing.T) {
	genres := deriveGenres(
		[]string{"Adventure -- Fiction", "adventure, classic", "Humor", "Satire"},
		[]string{"Best Books Ever"},
	)

	// "adventure, classic" collapses into the already-seen "Adventure".
	assert.Equal(t, []string{"Adventure", "Humor", "Satire"}, genres)
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())

	_, err := client.Search(context.Background(), "twain", 1)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UPSTREAM_ERROR", appError.Code)
}

func TestFetchByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())

	_, err := client.FetchByID(context.Background(), 99999)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}
