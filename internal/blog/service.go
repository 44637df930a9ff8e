// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package blog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lethanhduc/bookwise/internal/platform/apperr"
	"github.com/lethanhduc/bookwise/internal/platform/snapshot"
	"github.com/lethanhduc/bookwise/internal/platform/validate"
	"github.com/lethanhduc/bookwise/pkg/pagination"
	"github.com/lethanhduc/bookwise/pkg/slug"
	"github.com/lethanhduc/bookwise/pkg/uuid"
)

// Service implements blog curation and delivery.
type Service struct {
	posts *snapshot.Collection[Post]
}

// NewService wires the blog service.
func NewService(posts *snapshot.Collection[Post]) *Service {
	return &Service{posts: posts}
}

/*
List returns one page of posts, newest first, optionally filtered by tags.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - tags: []string (Empty disables the filter; a post matches if it carries
    any of the tags, case-insensitively)

Returns:
  - []Post
  - pagination.Meta
  - error
*/
func (service *Service) List(context context.Context, params pagination.Params, tags []string) ([]Post, pagination.Meta, error) {
	stored, err := service.posts.Load(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	filtered := make([]Post, 0, len(stored))
	for _, candidate := range stored {
		if len(tags) == 0 || hasAnyTag(candidate, tags) {
			filtered = append(filtered, candidate)
		}
	}

	sort.Slice(filtered, func(left, right int) bool {
		return filtered[left].PublishedDate.After(filtered[right].PublishedDate)
	})

	start := params.Offset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + params.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], pagination.NewMeta(params.Page, params.Limit, len(filtered)), nil
}

// Featured returns posts flagged featured, newest first, unpaginated.
func (service *Service) Featured(context context.Context) ([]Post, error) {
	stored, err := service.posts.Load(context)
	if err != nil {
		return nil, err
	}

	featured := make([]Post, 0)
	for _, candidate := range stored {
		if candidate.IsFeatured {
			featured = append(featured, candidate)
		}
	}

	sort.Slice(featured, func(left, right int) bool {
		return featured[left].PublishedDate.After(featured[right].PublishedDate)
	})

	return featured, nil
}

/*
GetBySlug resolves one post by its URL slug.

Returns:
  - Post
  - error: NOT_FOUND when no post carries the slug
*/
func (service *Service) GetBySlug(context context.Context, postSlug string) (Post, error) {
	stored, err := service.posts.Load(context)
	if err != nil {
		return Post{}, err
	}

	for _, candidate := range stored {
		if candidate.Slug == postSlug {
			return candidate, nil
		}
	}

	return Post{}, apperr.NotFound("blog post")
}

/*
Create publishes a new post.

Description: Slug and reading time are derived here; callers never supply
them. Slug collisions get a short id suffix so every post stays addressable.

Returns:
  - Post: The persisted post
  - error: VALIDATION_ERROR or STORAGE_ERROR
*/
func (service *Service) Create(context context.Context, input CreatePostInput) (Post, error) {
	validator := &validate.Validator{}
	err := validator.
		Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("content", input.Content).
		Required("author_name", input.AuthorName).
		Err()
	if err != nil {
		return Post{}, err
	}

	id := uuid.New()
	created := Post{
		ID:            id,
		Title:         strings.TrimSpace(input.Title),
		Excerpt:       input.Excerpt,
		Content:       input.Content,
		AuthorName:    strings.TrimSpace(input.AuthorName),
		CoverImage:    input.CoverImage,
		Tags:          input.Tags,
		ReadingTime:   readingTime(input.Content),
		IsFeatured:    input.IsFeatured,
		RichContent:   input.RichContent,
		PublishedDate: time.Now().UTC(),
	}

	_, err = service.posts.Update(context, func(stored []Post) ([]Post, error) {
		created.Slug = uniqueSlug(stored, created.Title, id)
		return append(stored, created), nil
	})
	if err != nil {
		return Post{}, err
	}

	return created, nil
}

/*
Update edits an existing post by id.

Description: Derived fields are recomputed from the post-patch state, so a
title change moves the slug and a content change refreshes the reading time.

Returns:
  - Post: The updated post
  - error: NOT_FOUND, VALIDATION_ERROR, STORAGE_ERROR
*/
func (service *Service) Update(context context.Context, id string, input UpdatePostInput) (Post, error) {
	var updated Post
	_, err := service.posts.Update(context, func(stored []Post) ([]Post, error) {
		for position, candidate := range stored {
			if candidate.ID != id {
				continue
			}

			applyPostPatch(&candidate, input)

			validator := &validate.Validator{}
			err := validator.
				Required("title", candidate.Title).
				Required("content", candidate.Content).
				Required("author_name", candidate.AuthorName).
				Err()
			if err != nil {
				return nil, err
			}

			if input.Title != nil {
				others := append(append([]Post{}, stored[:position]...), stored[position+1:]...)
				candidate.Slug = uniqueSlug(others, candidate.Title, candidate.ID)
			}
			candidate.ReadingTime = readingTime(candidate.Content)
			candidate.UpdatedAt = time.Now().UTC()

			stored[position] = candidate
			updated = candidate
			return stored, nil
		}
		return nil, apperr.NotFound("blog post")
	})
	if err != nil {
		return Post{}, err
	}

	return updated, nil
}

/*
Delete removes a post by id.

Returns:
  - error: NOT_FOUND when absent
*/
func (service *Service) Delete(context context.Context, id string) error {
	_, err := service.posts.Update(context, func(stored []Post) ([]Post, error) {
		for position, candidate := range stored {
			if candidate.ID == id {
				return append(stored[:position], stored[position+1:]...), nil
			}
		}
		return nil, apperr.NotFound("blog post")
	})
	return err
}

// uniqueSlug derives a slug from the title, suffixing a short id fragment
// when another post already holds it.
func uniqueSlug(existing []Post, title string, id string) string {
	derived := slug.From(title)
	if derived == "" {
		derived = "post"
	}

	for _, candidate := range existing {
		if candidate.Slug == derived {
			suffix := id
			if len(suffix) > 8 {
				suffix = suffix[:8]
			}
			return fmt.Sprintf("%s-%s", derived, suffix)
		}
	}

	return derived
}

func hasAnyTag(post Post, tags []string) bool {
	for _, wanted := range tags {
		for _, candidate := range post.Tags {
			if strings.EqualFold(candidate, wanted) {
				return true
			}
		}
	}
	return false
}

// applyPostPatch copies the non-nil fields of a patch onto a post.
func applyPostPatch(target *Post, input UpdatePostInput) {
	if input.Title != nil {
		target.Title = strings.TrimSpace(*input.Title)
	}
	if input.Excerpt != nil {
		target.Excerpt = *input.Excerpt
	}
	if input.Content != nil {
		target.Content = *input.Content
	}
	if input.AuthorName != nil {
		target.AuthorName = strings.TrimSpace(*input.AuthorName)
	}
	if input.CoverImage != nil {
		target.CoverImage = *input.CoverImage
	}
	if input.Tags != nil {
		target.Tags = *input.Tags
	}
	if input.IsFeatured != nil {
		target.IsFeatured = *input.IsFeatured
	}
	if input.RichContent != nil {
		target.RichContent = *input.RichContent
	}
}
