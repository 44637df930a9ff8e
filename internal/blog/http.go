// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lethanhduc/bookwise/internal/platform/middleware"
	requestutil "github.com/lethanhduc/bookwise/internal/platform/request"
	"github.com/lethanhduc/bookwise/internal/platform/respond"
	"github.com/lethanhduc/bookwise/internal/platform/sec"
	"github.com/lethanhduc/bookwise/pkg/pagination"
	"github.com/lethanhduc/bookwise/pkg/query"
)

// Handler exposes the blog over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs the blog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the /blog resource.
//
// Reading is public; publishing and editing require the admin role.
// Posts are addressed by slug for reads and by id for writes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/featured", handler.featured)
	router.Get("/{slug}", handler.getBySlug)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.create)
		admin.Put("/{id}", handler.update)
		admin.Delete("/{id}", handler.delete)
	})

	return router
}

// list handles GET /blog?tags=a,b&page=&limit=.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	tags := query.StringSlice(request.URL.Query().Get("tags"))

	posts, meta, err := handler.service.List(request.Context(), params, tags)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

func (handler *Handler) featured(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.service.Featured(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, posts)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreatePostInput
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
	var input UpdatePostInput
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
