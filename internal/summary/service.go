// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package summary

import (
	"context"

	"github.com/lethanhduc/bookwise/internal/platform/apperr"
	"github.com/lethanhduc/bookwise/internal/platform/validate"
)

// KeyStatus reports whether a user has a stored API key without echoing it.
type KeyStatus struct {
	Configured bool   `json:"configured"`
	KeyTail    string `json:"key_tail,omitempty"`
}

// Draft is a generated summary response.
type Draft struct {
	Summary string `json:"summary"`
}

// Service ties the key store and the provider client together per user.
type Service struct {
	keys      KeyStore
	generator *Generator
}

// NewService wires the summary service.
func NewService(keys KeyStore, generator *Generator) *Service {
	return &Service{keys: keys, generator: generator}
}

/*
SetAPIKey stores a user's provider credential.

Description: The format heuristic runs at save time so a pasted key that
cannot possibly work is rejected immediately rather than on first use.

Returns:
  - error: INVALID_API_KEY when the heuristic fails
*/
func (service *Service) SetAPIKey(context context.Context, userID string, apiKey string) error {
	if !looksLikeAPIKey(apiKey) {
		return apperr.InvalidAPIKey()
	}
	if err := service.keys.Set(context, userID, apiKey); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// KeyStatus reports whether the user has a stored key, with the last four
// characters for recognition.
func (service *Service) KeyStatus(context context.Context, userID string) (KeyStatus, error) {
	apiKey, err := service.keys.Get(context, userID)
	if err != nil {
		return KeyStatus{}, apperr.Internal(err)
	}
	if apiKey == "" {
		return KeyStatus{}, nil
	}

	tail := apiKey
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}

	return KeyStatus{Configured: true, KeyTail: tail}, nil
}

// ClearAPIKey removes the user's stored key.
func (service *Service) ClearAPIKey(context context.Context, userID string) error {
	if err := service.keys.Delete(context, userID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

/*
GenerateDraft produces a summary for the given book using the user's key.

Returns:
  - Draft
  - error: VALIDATION_ERROR, MISSING_API_KEY, INVALID_API_KEY,
    PROVIDER_ERROR, EMPTY_GENERATION
*/
func (service *Service) GenerateDraft(context context.Context, userID string, input GenerateInput) (Draft, error) {
	validator := &validate.Validator{}
	err := validator.
		Required("title", input.Title).
		MaxLen("title", input.Title, 300).
		Err()
	if err != nil {
		return Draft{}, err
	}

	apiKey, err := service.keys.Get(context, userID)
	if err != nil {
		return Draft{}, apperr.Internal(err)
	}
	if apiKey == "" {
		return Draft{}, apperr.MissingAPIKey()
	}

	text, err := service.generator.Generate(context, apiKey, input)
	if err != nil {
		return Draft{}, err
	}

	return Draft{Summary: text}, nil
}
