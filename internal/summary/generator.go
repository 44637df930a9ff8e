// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lethanhduc/bookwise/internal/platform/apperr"
)

const (
	requestTimeout = 45 * time.Second

	// maxContentChars bounds how much raw source content is embedded in the
	// prompt, keeping the request under provider size limits.
	maxContentChars = 4000
)

// GenerateInput describes the book to summarize. Title is required; the
// remaining hints enrich the prompt when present.
type GenerateInput struct {
	Title   string   `json:"title"`
	Author  string   `json:"author,omitempty"`
	Genres  []string `json:"genres,omitempty"`
	Content string   `json:"content,omitempty"`
}

// Request and response shapes for the generateContent endpoint.

type providerPart struct {
	Text string `json:"text"`
}

type providerContent struct {
	Parts []providerPart `json:"parts"`
}

type providerRequest struct {
	Contents []providerContent `json:"contents"`
}

type providerCandidate struct {
	Content providerContent `json:"content"`
}

type providerResponse struct {
	Candidates []providerCandidate `json:"candidates"`
}

type providerErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generator drafts summaries through the text-generation endpoint.
type Generator struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGenerator constructs a provider client.
func NewGenerator(baseURL string, model string, logger *slog.Logger) *Generator {
	return &Generator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

/*
Generate drafts one summary.

Description: Builds a natural-language prompt from the input, issues a
single POST to the provider, and extracts the generated text. The key format
heuristic runs first so an obviously broken key fails without a network call.

Parameters:
  - context: context.Context
  - apiKey: string (Caller-supplied provider credential)
  - input: GenerateInput

Returns:
  - string: The generated summary text
  - error: MISSING_API_KEY, INVALID_API_KEY, PROVIDER_ERROR with the
    provider's status, or EMPTY_GENERATION
*/
func (generator *Generator) Generate(context context.Context, apiKey string, input GenerateInput) (string, error) {
	if apiKey == "" {
		return "", apperr.MissingAPIKey()
	}
	if !looksLikeAPIKey(apiKey) {
		return "", apperr.InvalidAPIKey()
	}

	body, err := json.Marshal(providerRequest{
		Contents: []providerContent{
			{Parts: []providerPart{{Text: buildPrompt(input)}}},
		},
	})
	if err != nil {
		return "", apperr.Internal(err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", generator.baseURL, generator.model, apiKey)

	request, err := http.NewRequestWithContext(context, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Internal(err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := generator.httpClient.Do(request)
	if err != nil {
		generator.logger.Warn("summary_provider_unreachable", slog.Any("error", err))
		return "", apperr.Upstream("network failure", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", generator.providerError(response)
	}

	var parsed providerResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return "", apperr.Upstream("malformed provider response", err)
	}

	text := extractText(parsed)
	if text == "" {
		return "", apperr.EmptyGeneration()
	}

	return text, nil
}

// providerError maps a non-2xx provider response onto the error taxonomy.
// The 400, 403, and 429 statuses get distinguished user-facing messages.
func (generator *Generator) providerError(response *http.Response) error {
	var body providerErrorBody
	_ = json.NewDecoder(response.Body).Decode(&body)

	generator.logger.Warn("summary_provider_error",
		slog.Int("status", response.StatusCode),
		slog.String("provider_message", body.Error.Message),
	)

	switch response.StatusCode {
	case http.StatusBadRequest:
		return apperr.Provider(http.StatusBadRequest, "The provider rejected the request. The API key may be malformed.")
	case http.StatusForbidden:
		return apperr.Provider(http.StatusForbidden, "The provider refused the API key. Check that the key is active and has access.")
	case http.StatusTooManyRequests:
		return apperr.Provider(http.StatusTooManyRequests, "The provider rate limit was reached. Wait a moment and try again.")
	default:
		message := body.Error.Message
		if message == "" {
			message = "The provider returned an unexpected error."
		}
		return apperr.Provider(http.StatusBadGateway, message)
	}
}

// buildPrompt embeds the input fields into a natural-language instruction,
// truncating raw content to a bounded prefix.
func buildPrompt(input GenerateInput) string {
	var prompt strings.Builder

	fmt.Fprintf(&prompt, "Write a concise, engaging summary of the book %q", input.Title)
	if input.Author != "" {
		fmt.Fprintf(&prompt, " by %s", input.Author)
	}
	prompt.WriteString(".")

	if len(input.Genres) > 0 {
		fmt.Fprintf(&prompt, " The book belongs to these genres: %s.", strings.Join(input.Genres, ", "))
	}

	prompt.WriteString(" Cover the central themes and what makes the book worth reading, in 150-250 words. Do not include spoilers beyond the premise.")

	if content := strings.TrimSpace(input.Content); content != "" {
		if len(content) > maxContentChars {
			content = content[:maxContentChars]
		}
		fmt.Fprintf(&prompt, "\n\nUse this excerpt from the source text for grounding:\n%s", content)
	}

	return prompt.String()
}

// extractText joins the text parts of the first candidate.
func extractText(parsed providerResponse) string {
	if len(parsed.Candidates) == 0 {
		return ""
	}

	var parts []string
	for _, part := range parsed.Candidates[0].Content.Parts {
		if part.Text != "" {
			parts = append(parts, part.Text)
		}
	}

	return strings.TrimSpace(strings.Join(parts, ""))
}
