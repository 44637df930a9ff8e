// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package book

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lethanhduc/bookwise/internal/catalog"
	"github.com/lethanhduc/bookwise/internal/catalog/gutenberg"
	"github.com/lethanhduc/bookwise/internal/catalog/modern"
	"github.com/lethanhduc/bookwise/internal/platform/apperr"
	"github.com/lethanhduc/bookwise/internal/platform/snapshot"
	"github.com/lethanhduc/bookwise/internal/platform/validate"
	"github.com/lethanhduc/bookwise/pkg/pagination"
	"github.com/lethanhduc/bookwise/pkg/uuid"
)

// gutenbergPageSize is the fixed page size the Gutendex API serves.
const gutenbergPageSize = 32

// ExternalCatalog is the remote bibliographic source consumed by the service.
// Implemented by [gutenberg.Client]; stubbed in tests.
type ExternalCatalog interface {
	Search(context context.Context, query string, page int) (gutenberg.SearchResult, error)
	FetchByID(context context.Context, gutenbergID int) (catalog.Book, error)
}

// Service implements catalog aggregation and local-collection curation.
type Service struct {
	books    *snapshot.Collection[catalog.Book]
	comments *snapshot.Collection[Comment]
	likes    *snapshot.Collection[Like]
	external ExternalCatalog
	modern   *modern.Generator
	logger   *slog.Logger
}

// NewService wires the book service.
func NewService(
	books *snapshot.Collection[catalog.Book],
	comments *snapshot.Collection[Comment],
	likes *snapshot.Collection[Like],
	external ExternalCatalog,
	modernGenerator *modern.Generator,
	logger *slog.Logger,
) *Service {
	return &Service{
		books:    books,
		comments: comments,
		likes:    likes,
		external: external,
		modern:   modernGenerator,
		logger:   logger,
	}
}

/*
List returns one display page of the aggregated catalog.

Description: Dispatches on the source filter. Local listings are filtered
and paginated in memory. Gutenberg listings proxy one upstream search page.
Modern listings page through the generated universe. The "all" view
concatenates the filtered local collection with the current external pages;
when the upstream search fails, the view degrades to the remaining sources
instead of failing the whole request.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - source: catalog.Source
  - query: string (Free-text search)
  - genre: string (Exact genre tag, case-insensitive; empty disables)

Returns:
  - []catalog.Book: Display page with like counts applied
  - pagination.Meta
  - error
*/
func (service *Service) List(context context.Context, params pagination.Params, source catalog.Source, query string, genre string) ([]catalog.Book, pagination.Meta, error) {
	switch source {
	case catalog.SourceLocal:
		return service.listLocal(context, params, query, genre)
	case catalog.SourceGutenberg:
		return service.listGutenberg(context, params, query, genre)
	case catalog.SourceModern:
		return service.listModern(context, params, query, genre)
	default:
		return service.listAll(context, params, query, genre)
	}
}

func (service *Service) listLocal(context context.Context, params pagination.Params, query string, genre string) ([]catalog.Book, pagination.Meta, error) {
	local, err := service.books.Load(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	filtered := filterGenre(Merge(local, nil, catalog.SourceLocal, query), genre)
	page := pageOf(filtered, params.Page, params.Limit)

	page, err = service.applyLikes(context, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return page, pagination.NewMeta(params.Page, params.Limit, len(filtered)), nil
}

func (service *Service) listGutenberg(context context.Context, params pagination.Params, query string, genre string) ([]catalog.Book, pagination.Meta, error) {
	result, err := service.external.Search(context, query, params.Page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	// The upstream count is not genre-aware; a genre filter narrows the
	// visible page only.
	books, err := service.applyLikes(context, filterGenre(result.Books, genre))
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return books, pagination.NewMeta(params.Page, gutenbergPageSize, result.Total), nil
}

func (service *Service) listModern(context context.Context, params pagination.Params, query string, genre string) ([]catalog.Book, pagination.Meta, error) {
	var page []catalog.Book
	var total int

	if query == "" && genre == "" {
		page, total = service.modern.Page(params.Page, params.Limit)
	} else {
		matches := service.searchModern(query, genre)
		total = len(matches)
		page = pageOf(matches, params.Page, params.Limit)
	}

	page, err := service.applyLikes(context, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return page, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (service *Service) listAll(context context.Context, params pagination.Params, query string, genre string) ([]catalog.Book, pagination.Meta, error) {
	local, err := service.books.Load(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	localFiltered := filterGenre(Merge(local, nil, catalog.SourceLocal, query), genre)

	external := make([]catalog.Book, 0, gutenbergPageSize+params.Limit)
	total := len(localFiltered)

	gutenbergResult, err := service.external.Search(context, query, params.Page)
	if err != nil {
		// Degrade to the remaining sources rather than failing the view.
		service.logger.Warn("gutenberg_search_degraded", slog.Any("error", err))
	} else {
		kept := filterGenre(gutenbergResult.Books, genre)
		external = append(external, kept...)
		if genre == "" {
			total += gutenbergResult.Total
		} else {
			total += len(kept)
		}
	}

	if query == "" && genre == "" {
		modernPage, modernTotal := service.modern.Page(params.Page, params.Limit)
		external = append(external, modernPage...)
		total += modernTotal
	} else {
		matches := service.searchModern(query, genre)
		external = append(external, pageOf(matches, params.Page, params.Limit)...)
		total += len(matches)
	}

	merged := Merge(localFiltered, external, catalog.SourceAll, query)

	merged, err = service.applyLikes(context, merged)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return merged, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// searchModern scans the generated universe for query and genre matches.
// The universe is bounded and cached, so a full scan stays cheap.
func (service *Service) searchModern(query string, genre string) []catalog.Book {
	matches := make([]catalog.Book, 0)
	for index := 0; index < modern.Universe; index++ {
		candidate, _ := service.modern.Get(index)
		if candidate.MatchesQuery(query) && candidate.HasGenre(genre) {
			matches = append(matches, candidate)
		}
	}
	return matches
}

/*
Featured returns the curated featured shelf.

Description: Local books flagged featured, unpaginated. Featured and
trending shelves are fixed-size curation surfaces, not browsing lists.
*/
func (service *Service) Featured(context context.Context) ([]catalog.Book, error) {
	return service.localShelf(context, func(candidate catalog.Book) bool { return candidate.IsFeatured })
}

// Trending returns local books flagged trending, unpaginated.
func (service *Service) Trending(context context.Context) ([]catalog.Book, error) {
	return service.localShelf(context, func(candidate catalog.Book) bool { return candidate.IsTrending })
}

func (service *Service) localShelf(context context.Context, keep func(catalog.Book) bool) ([]catalog.Book, error) {
	local, err := service.books.Load(context)
	if err != nil {
		return nil, err
	}

	shelf := make([]catalog.Book, 0)
	for _, candidate := range local {
		if keep(candidate) {
			shelf = append(shelf, candidate.WithSource())
		}
	}

	return service.applyLikes(context, shelf)
}

/*
Get resolves one book by its prefixed identifier.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - catalog.Book: With the like count applied
  - error: NOT_FOUND when no source can resolve the id
*/
func (service *Service) Get(context context.Context, id string) (catalog.Book, error) {
	resolved, err := service.resolve(context, id)
	if err != nil {
		return catalog.Book{}, err
	}

	overlaid, err := service.applyLikes(context, []catalog.Book{resolved})
	if err != nil {
		return catalog.Book{}, err
	}

	return overlaid[0], nil
}

func (service *Service) resolve(context context.Context, id string) (catalog.Book, error) {
	switch catalog.SourceOf(id) {
	case catalog.SourceGutenberg:
		rawID := strings.TrimPrefix(id, catalog.PrefixGutenberg)
		gutenbergID, err := strconv.Atoi(rawID)
		if err != nil {
			return catalog.Book{}, apperr.NotFound("book")
		}
		return service.external.FetchByID(context, gutenbergID)

	case catalog.SourceModern:
		generated, found := service.modern.ByID(id)
		if !found {
			return catalog.Book{}, apperr.NotFound("book")
		}
		return generated, nil

	default:
		local, err := service.books.Load(context)
		if err != nil {
			return catalog.Book{}, err
		}
		for _, candidate := range local {
			if candidate.ID == id {
				return candidate.WithSource(), nil
			}
		}
		return catalog.Book{}, apperr.NotFound("book")
	}
}

/*
Create adds a book to the curated local collection.

Parameters:
  - context: context.Context
  - input: CreateBookInput

Returns:
  - catalog.Book: The persisted record with a fresh UUIDv7 id
  - error: VALIDATION_ERROR or STORAGE_ERROR
*/
func (service *Service) Create(context context.Context, input CreateBookInput) (catalog.Book, error) {
	validator := &validate.Validator{}
	err := validator.
		Required("title", input.Title).
		MaxLen("title", input.Title, 300).
		Required("author_name", input.AuthorName).
		Required("short_summary", input.ShortSummary).
		FloatRange("rating", input.Rating, 0, 5).
		Err()
	if err != nil {
		return catalog.Book{}, err
	}

	created := catalog.Book{
		ID:    uuid.New(),
		Title: strings.TrimSpace(input.Title),
		Author: catalog.Author{
			ID:   uuid.New(),
			Name: strings.TrimSpace(input.AuthorName),
			Bio:  input.AuthorBio,
		},
		CoverURL:        input.CoverURL,
		Summary:         input.Summary,
		ShortSummary:    input.ShortSummary,
		Genres:          input.Genres,
		Rating:          catalog.ClampRating(input.Rating),
		PageCount:       input.PageCount,
		YearPublished:   input.YearPublished,
		IsFeatured:      input.IsFeatured,
		IsTrending:      input.IsTrending,
		AudioSummaryURL: input.AudioSummaryURL,
		DateAdded:       time.Now().UTC(),
		Source:          catalog.SourceLocal,
	}

	_, err = service.books.Update(context, func(local []catalog.Book) ([]catalog.Book, error) {
		return append(local, created), nil
	})
	if err != nil {
		return catalog.Book{}, err
	}

	return created, nil
}

/*
Update edits a book in the curated local collection.

Description: External catalog books are projections and reject writes; the
identifier prefix decides before any lookup happens.

Returns:
  - catalog.Book: The updated record
  - error: UNPROCESSABLE for external ids, NOT_FOUND, VALIDATION_ERROR
*/
func (service *Service) Update(context context.Context, id string, input UpdateBookInput) (catalog.Book, error) {
	if !catalog.CanMutate(id) {
		return catalog.Book{}, apperr.Unprocessable("External catalog books are read-only")
	}

	var updated catalog.Book
	_, err := service.books.Update(context, func(local []catalog.Book) ([]catalog.Book, error) {
		for position, candidate := range local {
			if candidate.ID != id {
				continue
			}

			applyBookPatch(&candidate, input)

			validator := &validate.Validator{}
			err := validator.
				Required("title", candidate.Title).
				Required("author_name", candidate.Author.Name).
				FloatRange("rating", candidate.Rating, 0, 5).
				Err()
			if err != nil {
				return nil, err
			}

			local[position] = candidate
			updated = candidate.WithSource()
			return local, nil
		}
		return nil, apperr.NotFound("book")
	})
	if err != nil {
		return catalog.Book{}, err
	}

	return updated, nil
}

/*
Delete removes a book from the curated local collection.

Returns:
  - error: UNPROCESSABLE for external ids, NOT_FOUND when absent
*/
func (service *Service) Delete(context context.Context, id string) error {
	if !catalog.CanMutate(id) {
		return apperr.Unprocessable("Cannot delete an external catalog book")
	}

	_, err := service.books.Update(context, func(local []catalog.Book) ([]catalog.Book, error) {
		for position, candidate := range local {
			if candidate.ID == id {
				return append(local[:position], local[position+1:]...), nil
			}
		}
		return nil, apperr.NotFound("book")
	})
	return err
}

/*
ToggleLike flips one user's like on one book.

Description: Likes work for books from any source; only the like record is
persisted, never the external book itself.

Returns:
  - LikeResult: New liked state and total like count
  - error: NOT_FOUND when the book cannot be resolved
*/
func (service *Service) ToggleLike(context context.Context, bookID string, userID string) (LikeResult, error) {
	resolved, err := service.resolve(context, bookID)
	if err != nil {
		return LikeResult{}, err
	}

	liked := false
	updated, err := service.likes.Update(context, func(likes []Like) ([]Like, error) {
		for position, existing := range likes {
			if existing.BookID == bookID && existing.UserID == userID {
				return append(likes[:position], likes[position+1:]...), nil
			}
		}
		liked = true
		return append(likes, Like{BookID: bookID, UserID: userID, CreatedAt: time.Now().UTC()}), nil
	})
	if err != nil {
		return LikeResult{}, err
	}

	count := resolved.Likes
	for _, existing := range updated {
		if existing.BookID == bookID {
			count++
		}
	}

	return LikeResult{BookID: bookID, Liked: liked, Likes: count}, nil
}

/*
ListComments returns all comments for one book, newest first.
*/
func (service *Service) ListComments(context context.Context, bookID string) ([]Comment, error) {
	stored, err := service.comments.Load(context)
	if err != nil {
		return nil, err
	}

	matching := make([]Comment, 0)
	for _, candidate := range stored {
		if candidate.BookID == bookID {
			matching = append(matching, candidate)
		}
	}

	sort.Slice(matching, func(left, right int) bool {
		return matching[left].CreatedAt.After(matching[right].CreatedAt)
	})

	return matching, nil
}

/*
AddComment posts a comment on a book as the given user.

Returns:
  - Comment: The persisted comment
  - error: NOT_FOUND, VALIDATION_ERROR, STORAGE_ERROR
*/
func (service *Service) AddComment(context context.Context, bookID string, userID string, userName string, input AddCommentInput) (Comment, error) {
	validator := &validate.Validator{}
	err := validator.
		Required("content", input.Content).
		MaxLen("content", input.Content, 2000).
		Err()
	if err != nil {
		return Comment{}, err
	}

	if _, err := service.resolve(context, bookID); err != nil {
		return Comment{}, err
	}

	created := Comment{
		ID:        uuid.New(),
		BookID:    bookID,
		UserID:    userID,
		UserName:  userName,
		Content:   strings.TrimSpace(input.Content),
		CreatedAt: time.Now().UTC(),
	}

	_, err = service.comments.Update(context, func(stored []Comment) ([]Comment, error) {
		return append(stored, created), nil
	})
	if err != nil {
		return Comment{}, err
	}

	return created, nil
}

// applyLikes overlays persisted like counts onto a page of books.
func (service *Service) applyLikes(context context.Context, books []catalog.Book) ([]catalog.Book, error) {
	if len(books) == 0 {
		return books, nil
	}

	likes, err := service.likes.Load(context)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(likes))
	for _, like := range likes {
		counts[like.BookID]++
	}

	for position := range books {
		books[position].Likes += counts[books[position].ID]
	}

	return books, nil
}

// applyBookPatch copies the non-nil fields of a patch onto a record.
func applyBookPatch(target *catalog.Book, input UpdateBookInput) {
	if input.Title != nil {
		target.Title = strings.TrimSpace(*input.Title)
	}
	if input.AuthorName != nil {
		target.Author.Name = strings.TrimSpace(*input.AuthorName)
	}
	if input.AuthorBio != nil {
		target.Author.Bio = *input.AuthorBio
	}
	if input.CoverURL != nil {
		target.CoverURL = *input.CoverURL
	}
	if input.Summary != nil {
		target.Summary = *input.Summary
	}
	if input.ShortSummary != nil {
		target.ShortSummary = *input.ShortSummary
	}
	if input.Genres != nil {
		target.Genres = *input.Genres
	}
	if input.Rating != nil {
		target.Rating = catalog.ClampRating(*input.Rating)
	}
	if input.PageCount != nil {
		target.PageCount = *input.PageCount
	}
	if input.YearPublished != nil {
		target.YearPublished = *input.YearPublished
	}
	if input.IsFeatured != nil {
		target.IsFeatured = *input.IsFeatured
	}
	if input.IsTrending != nil {
		target.IsTrending = *input.IsTrending
	}
	if input.AudioSummaryURL != nil {
		target.AudioSummaryURL = *input.AudioSummaryURL
	}
}
