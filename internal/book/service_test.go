// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package book

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethanhduc/bookwise/internal/catalog"
	"github.com/lethanhduc/bookwise/internal/catalog/gutenberg"
	"github.com/lethanhduc/bookwise/internal/catalog/modern"
	"github.com/lethanhduc/bookwise/internal/platform/apperr"
	"github.com/lethanhduc/bookwise/internal/platform/constants"
	"github.com/lethanhduc/bookwise/internal/platform/snapshot"
	"github.com/lethanhduc/bookwise/pkg/pagination"
	"github.com/lethanhduc/bookwise/pkg/pointer"
)

// stubCatalog is a canned ExternalCatalog for service tests.
type stubCatalog struct {
	searchResult gutenberg.SearchResult
	searchErr    error
	fetched      map[int]catalog.Book
}

func (stub *stubCatalog) Search(_ context.Context, _ string, _ int) (gutenberg.SearchResult, error) {
	return stub.searchResult, stub.searchErr
}

func (stub *stubCatalog) FetchByID(_ context.Context, gutenbergID int) (catalog.Book, error) {
	if found, ok := stub.fetched[gutenbergID]; ok {
		return found, nil
	}
	return catalog.Book{}, apperr.NotFound("book")
}

func newTestService(t *testing.T, external ExternalCatalog) *Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := snapshot.NewMemoryStore()

	if external == nil {
		external = &stubCatalog{}
	}

	return NewService(
		snapshot.NewCollection(store, constants.CollectionBooks, []catalog.Book{}, logger),
		snapshot.NewCollection(store, constants.CollectionComments, []Comment{}, logger),
		snapshot.NewCollection(store, constants.CollectionLikes, []Like{}, logger),
		external,
		modern.NewGenerator(1),
		logger,
	)
}

func TestCreateAndGetLocalBook(t *testing.T) {
	service := newTestService(t, nil)

	created, err := service.Create(context.Background(), CreateBookInput{
		Title:        "Deep Work",
		AuthorName:   "Cal Newport",
		ShortSummary: "Focused success in a distracted world.",
		Rating:       4.5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, catalog.SourceLocal, created.Source)

	found, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deep Work", found.Title)
	assert.Equal(t, "Cal Newport", found.Author.Name)
}

func TestCreateValidation(t *testing.T) {
	service := newTestService(t, nil)

	_, err := service.Create(context.Background(), CreateBookInput{Rating: 9})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

// Deleting an external book must be rejected and leave the local
// collection untouched.
func TestDeleteExternalBookRejected(t *testing.T) {
	service := newTestService(t, nil)

	created, err := service.Create(context.Background(), CreateBookInput{
		Title:        "Local Keeper",
		AuthorName:   "Ann Example",
		ShortSummary: "Stays put.",
	})
	require.NoError(t, err)

	for _, externalID := range []string{"gutenberg-76", "modern-12"} {
		err := service.Delete(context.Background(), externalID)
		require.Error(t, err, "id=%s", externalID)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNPROCESSABLE", appError.Code)
	}

	books, _, err := service.List(context.Background(), pagination.Params{Page: 1, Limit: 10}, catalog.SourceLocal, "", "")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, created.ID, books[0].ID)
}

func TestUpdateExternalBookRejected(t *testing.T) {
	service := newTestService(t, nil)

	_, err := service.Update(context.Background(), "modern-3", UpdateBookInput{Title: pointer.To("New Title")})
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

func TestDeleteLocalBook(t *testing.T) {
	service := newTestService(t, nil)

	created, err := service.Create(context.Background(), CreateBookInput{
		Title:        "Ephemeral",
		AuthorName:   "Ann Example",
		ShortSummary: "Soon gone.",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	_, err = service.Get(context.Background(), created.ID)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestListAllMergesSources(t *testing.T) {
	external := &stubCatalog{
		searchResult: gutenberg.SearchResult{
			Books: []catalog.Book{
				{ID: "gutenberg-74", Title: "Tom Sawyer Twain", Author: catalog.Author{Name: "Mark Twain"}},
				{ID: "gutenberg-76", Title: "Huckleberry Finn Twain", Author: catalog.Author{Name: "Mark Twain"}},
			},
			Total: 2,
		},
	}
	service := newTestService(t, external)

	_, err := service.Create(context.Background(), CreateBookInput{
		Title:        "Twain: A Life",
		AuthorName:   "Ron Powers",
		ShortSummary: "Biography.",
	})
	require.NoError(t, err)

	params := pagination.Params{Page: 1, Limit: 10}

	all, _, err := service.List(context.Background(), params, catalog.SourceAll, "Twain", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	gutenbergOnly, _, err := service.List(context.Background(), params, catalog.SourceGutenberg, "Twain", "")
	require.NoError(t, err)
	assert.Len(t, gutenbergOnly, 2)

	localOnly, _, err := service.List(context.Background(), params, catalog.SourceLocal, "Twain", "")
	require.NoError(t, err)
	assert.Len(t, localOnly, 1)
}

func TestListGenreFilter(t *testing.T) {
	service := newTestService(t, nil)

	_, err := service.Create(context.Background(), CreateBookInput{
		Title:        "River Journal",
		AuthorName:   "Ann Example",
		ShortSummary: "Essays.",
		Genres:       []string{"Memoir", "Essays"},
	})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), CreateBookInput{
		Title:        "Orbit Atlas",
		AuthorName:   "Ann Example",
		ShortSummary: "Space.",
		Genres:       []string{"Science"},
	})
	require.NoError(t, err)

	params := pagination.Params{Page: 1, Limit: 10}

	memoirs, meta, err := service.List(context.Background(), params, catalog.SourceLocal, "", "memoir")
	require.NoError(t, err)
	require.Len(t, memoirs, 1)
	assert.Equal(t, "River Journal", memoirs[0].Title)
	assert.Equal(t, 1, meta.Total)
}

// A failing upstream search degrades the combined view instead of
// failing it.
func TestListAllDegradesOnUpstreamFailure(t *testing.T) {
	external := &stubCatalog{searchErr: apperr.Upstream("502 Bad Gateway", nil)}
	service := newTestService(t, external)

	_, err := service.Create(context.Background(), CreateBookInput{
		Title:        "Still Here",
		AuthorName:   "Ann Example",
		ShortSummary: "Survives upstream outages.",
	})
	require.NoError(t, err)

	all, _, err := service.List(context.Background(), pagination.Params{Page: 1, Limit: 50}, catalog.SourceAll, "", "")
	require.NoError(t, err)

	// Local book plus one modern page, no gutenberg contribution.
	assert.Len(t, all, 51)
}

func TestToggleLike(t *testing.T) {
	service := newTestService(t, nil)

	created, err := service.Create(context.Background(), CreateBookInput{
		Title:        "Likeable",
		AuthorName:   "Ann Example",
		ShortSummary: "Very likeable.",
	})
	require.NoError(t, err)

	liked, err := service.ToggleLike(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.Likes)

	// A second user stacks.
	stacked, err := service.ToggleLike(context.Background(), created.ID, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 2, stacked.Likes)

	// Same user again untoggles.
	untoggled, err := service.ToggleLike(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, untoggled.Liked)
	assert.Equal(t, 1, untoggled.Likes)

	// The like count surfaces on reads.
	found, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Likes)
}

func TestLikeExternalBook(t *testing.T) {
	service := newTestService(t, nil)

	result, err := service.ToggleLike(context.Background(), "modern-7", "user-1")
	require.NoError(t, err)
	assert.True(t, result.Liked)

	_, err = service.ToggleLike(context.Background(), "gutenberg-999", "user-1")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestCommentsPersistAcrossLoads(t *testing.T) {
	service := newTestService(t, nil)

	created, err := service.AddComment(context.Background(), "modern-7", "user-1", "Maya", AddCommentInput{
		Content: "Loved the pacing.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maya", created.UserName)

	comments, err := service.ListComments(context.Background(), "modern-7")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, created.ID, comments[0].ID)

	empty, err := service.ListComments(context.Background(), "modern-8")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
