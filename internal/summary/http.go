// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package summary

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lethanhduc/bookwise/internal/platform/middleware"
	requestutil "github.com/lethanhduc/bookwise/internal/platform/request"
	"github.com/lethanhduc/bookwise/internal/platform/respond"
)

// Handler exposes summary drafting over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs the summary HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// setKeyInput is the payload for storing a provider API key.
type setKeyInput struct {
	APIKey string `json:"api_key"`
}

// Routes returns the router for the /summary resource.
// Every operation acts on the caller's own key, so all of them require auth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Put("/apikey", handler.setKey)
	router.Get("/apikey", handler.keyStatus)
	router.Delete("/apikey", handler.clearKey)
	router.Post("/generate", handler.generate)

	return router
}

func (handler *Handler) setKey(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setKeyInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetAPIKey(request.Context(), userID, input.APIKey); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) keyStatus(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.KeyStatus(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

func (handler *Handler) clearKey(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ClearAPIKey(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input GenerateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.GenerateDraft(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, draft)
}
