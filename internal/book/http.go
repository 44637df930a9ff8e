// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lethanhduc/bookwise/internal/catalog"
	"github.com/lethanhduc/bookwise/internal/platform/apperr"
	"github.com/lethanhduc/bookwise/internal/platform/middleware"
	requestutil "github.com/lethanhduc/bookwise/internal/platform/request"
	"github.com/lethanhduc/bookwise/internal/platform/respond"
	"github.com/lethanhduc/bookwise/internal/platform/sec"
	"github.com/lethanhduc/bookwise/pkg/pagination"
)

// Handler exposes the book catalog over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs the book HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the /books resource.
//
// Browsing is public. Likes and comments require authentication; catalog
// curation requires the admin role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/featured", handler.featured)
	router.Get("/trending", handler.trending)
	router.Get("/{id}", handler.get)
	router.Get("/{id}/comments", handler.listComments)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/{id}/like", handler.toggleLike)
		protected.Post("/{id}/comments", handler.addComment)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.create)
		admin.Put("/{id}", handler.update)
		admin.Delete("/{id}", handler.delete)
	})

	return router
}

// list handles GET /books?source=&q=&genre=&page=&limit=.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query().Get("q")
	genre := request.URL.Query().Get("genre")

	source, valid := catalog.ParseSource(request.URL.Query().Get("source"))
	if !valid {
		respond.Error(writer, request, apperr.ValidationError("Unknown source filter"))
		return
	}

	books, meta, err := handler.service.List(request.Context(), params, source, query, genre)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, meta)
}

func (handler *Handler) featured(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.Featured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) trending(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.Trending(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateBookInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateBookInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ToggleLike(request.Context(), requestutil.Param(request, "id"), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListComments(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AddCommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.AddComment(request.Context(), requestutil.Param(request, "id"), claims.UserID, claims.Name, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}
