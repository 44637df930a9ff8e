// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

/*
Package gutenberg fetches public-domain book records from the Gutendex API
and normalizes them into the shared catalog model.

Consumed interface:

  - GET {base}?search={query}&page={n} returns a paginated envelope
    {count, next, previous, results: [...]}.
  - GET {base}/{id} returns one raw record of the same shape.

Each request is a single attempt with a bounded timeout. Non-2xx responses
surface as UPSTREAM_ERROR carrying the HTTP status text; the caller decides
whether to retry.
*/
package gutenberg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lethanhduc/bookwise/internal/catalog"
	"github.com/lethanhduc/bookwise/internal/platform/apperr"
)

const requestTimeout = 15 * time.Second

// apiAuthor mirrors one entry of the Gutendex "authors" array.
type apiAuthor struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

// apiBook mirrors one raw Gutendex record. Only the fields the normalizer
// consumes are decoded.
type apiBook struct {
	ID            int               `json:"id"`
	Title         string            `json:"title"`
	Authors       []apiAuthor       `json:"authors"`
	Subjects      []string          `json:"subjects"`
	Bookshelves   []string          `json:"bookshelves"`
	Languages     []string          `json:"languages"`
	Formats       map[string]string `json:"formats"`
	DownloadCount int               `json:"download_count"`
}

// apiPage mirrors the Gutendex list envelope.
type apiPage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []apiBook `json:"results"`
}

// SearchResult is one normalized page of Gutendex search results.
type SearchResult struct {
	Books   []catalog.Book
	Total   int
	HasNext bool
	HasPrev bool
}

// Client is a Gutendex API consumer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

/*
NewClient constructs a Gutendex client.

Parameters:
  - baseURL: string (List endpoint base, e.g. "https://gutendex.com/books")
  - logger: *slog.Logger

Returns:
  - *Client
*/
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

/*
Search fetches one page of search results and normalizes every record.

Parameters:
  - context: context.Context
  - query: string (Free-text search, URL-encoded by the client)
  - page: int (1-based, clamped to 1)

Returns:
  - SearchResult: Normalized books plus pagination hints from the envelope
  - error: UPSTREAM_ERROR on network failure or non-2xx status
*/
func (client *Client) Search(context context.Context, query string, page int) (SearchResult, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	if query != "" {
		params.Set("search", query)
	}
	params.Set("page", strconv.Itoa(page))

	endpoint := client.baseURL + "?" + params.Encode()

	var envelope apiPage
	if err := client.getJSON(context, endpoint, &envelope); err != nil {
		return SearchResult{}, err
	}

	books := make([]catalog.Book, 0, len(envelope.Results))
	for _, raw := range envelope.Results {
		books = append(books, normalize(raw))
	}

	return SearchResult{
		Books:   books,
		Total:   envelope.Count,
		HasNext: envelope.Next != nil,
		HasPrev: envelope.Previous != nil,
	}, nil
}

/*
FetchByID fetches and normalizes a single record by its numeric Gutendex id.

Parameters:
  - context: context.Context
  - gutenbergID: int

Returns:
  - catalog.Book: Normalized record with a "gutenberg-" prefixed id
  - error: NOT_FOUND for 404, UPSTREAM_ERROR otherwise
*/
func (client *Client) FetchByID(context context.Context, gutenbergID int) (catalog.Book, error) {
	endpoint := fmt.Sprintf("%s/%d", client.baseURL, gutenbergID)

	var raw apiBook
	if err := client.getJSON(context, endpoint, &raw); err != nil {
		return catalog.Book{}, err
	}

	return normalize(raw), nil
}

// getJSON issues one GET request and decodes a JSON body into target.
func (client *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperr.Upstream("invalid request", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("gutendex_request_failed", slog.Any("error", err))
		return apperr.Upstream("network failure", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode == http.StatusNotFound {
		return apperr.NotFound("book")
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		client.logger.Warn("gutendex_bad_status",
			slog.Int("status", response.StatusCode),
			slog.String("endpoint", endpoint),
		)
		return apperr.Upstream(response.Status, nil)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return apperr.Upstream("malformed response body", err)
	}

	return nil
}
