// Package extract implements the AI-extraction client: given a map link it
// asks a generative-text backend for a best-effort structured guess at place
// attributes, for use as a form-fill default. The call is a convenience
// pre-fill only: it is never on the persistence path and has no retry or
// caching policy.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// DefaultEndpoint is the Gemini API base URL used when none is configured.
const DefaultEndpoint = "https://generativelanguage.googleapis.com"

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// Config holds the generative backend settings.
type Config struct {
	Endpoint string // base URL; DefaultEndpoint when empty
	APIKey   string // required
	Model    string // DefaultModel when empty
}

// Client calls a generateContent-style endpoint with a response schema that
// constrains the model's output to the PlaceInfo shape, category restricted
// to the closed enumeration.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewClient builds a Client from cfg, filling in endpoint and model defaults.
func NewClient(cfg Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   cfg.APIKey,
		model:    model,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// request/response shapes for the generateContent wire format.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ExtractPlaceInfo asks the backend for place attributes derived from url.
// Every failure mode (network error, non-200 status, empty candidate text,
// output that is not the expected JSON shape) surfaces as a wrapped
// domain.ErrExtraction so callers can leave the in-progress draft untouched
// and invite manual entry. An out-of-enum category in otherwise valid output
// is coerced to Other rather than rejected.
func (c *Client) ExtractPlaceInfo(ctx context.Context, url string) (domain.PlaceInfo, error) {
	if url == "" {
		return domain.PlaceInfo{}, fmt.Errorf("extract.Client.ExtractPlaceInfo: %w: url is required", domain.ErrValidation)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt(url)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   placeInfoSchema(),
		},
	})
	if err != nil {
		return domain.PlaceInfo{}, fmt.Errorf("extract.Client.ExtractPlaceInfo: encode: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return domain.PlaceInfo{}, fmt.Errorf("extract.Client.ExtractPlaceInfo: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.PlaceInfo{}, fmt.Errorf("extract.Client.ExtractPlaceInfo: %w: %v", domain.ErrExtraction, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.PlaceInfo{}, fmt.Errorf("extract.Client.ExtractPlaceInfo: %w: read: %v", domain.ErrExtraction, err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.PlaceInfo{}, fmt.Errorf("extract.Client.ExtractPlaceInfo: %w: status %d", domain.ErrExtraction, resp.StatusCode)
	}

	var gen generateResponse
	if err := json.Unmarshal(raw, &gen); err != nil {
		return domain.PlaceInfo{}, fmt.Errorf("extract.Client.ExtractPlaceInfo: %w: decode: %v", domain.ErrExtraction, err)
	}
	if gen.Error != nil {
		return domain.PlaceInfo{}, fmt.Errorf("extract.Client.ExtractPlaceInfo: %w: %s", domain.ErrExtraction, gen.Error.Message)
	}

	text := candidateText(gen)
	if text == "" {
		return domain.PlaceInfo{}, fmt.Errorf("extract.Client.ExtractPlaceInfo: %w: empty response", domain.ErrExtraction)
	}

	var info domain.PlaceInfo
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		return domain.PlaceInfo{}, fmt.Errorf("extract.Client.ExtractPlaceInfo: %w: malformed output: %v", domain.ErrExtraction, err)
	}

	info.Category = domain.NormalizeCategory(info.Category)
	return info, nil
}

// candidateText returns the first candidate's first text part, or "".
func candidateText(gen generateResponse) string {
	for _, cand := range gen.Candidates {
		for _, p := range cand.Content.Parts {
			if strings.TrimSpace(p.Text) != "" {
				return p.Text
			}
		}
	}
	return ""
}

// prompt builds the extraction instruction sent alongside the URL.
func prompt(url string) string {
	return fmt.Sprintf(`Extract travel place information from this link: %s.
If it is a Google Maps link, use your knowledge of that location; if it is a
general travel link, summarize the key destination.

Return:
1. The official name of the place.
2. The full physical address.
3. A concise 1-2 sentence description of the main attraction.
4. The latest star rating as a number from 1 to 5, if available.
5. At least 3 relevant tags.
6. The best-fit category: Restaurant, Cafe, Sightseeing, Hotel, Shopping, Activity, or Other.`, url)
}

// placeInfoSchema is the response schema the backend is constrained to.
// Category values are restricted to the closed enumeration.
func placeInfoSchema() map[string]any {
	categories := domain.Categories()
	enum := make([]string, len(categories))
	for i, c := range categories {
		enum[i] = string(c)
	}
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"name":        map[string]any{"type": "STRING"},
			"category":    map[string]any{"type": "STRING", "enum": enum},
			"address":     map[string]any{"type": "STRING"},
			"description": map[string]any{"type": "STRING"},
			"tags":        map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
			"rating":      map[string]any{"type": "NUMBER"},
		},
		"required": []string{"name", "category", "address", "description", "tags"},
	}
}
