package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lingobridge/api/internal/platform/httpx"
	"github.com/lingobridge/api/internal/services"

	domain "github.com/lingobridge/api/internal/domain"
)

const maxTranslateBodySize = 1 << 20

var (
	errEmptyBody    = errors.New("request body is empty")
	errBodyTooLarge = errors.New("request body exceeds limit")
)

// TranslationHandlers serves the translation resolution endpoint.
type TranslationHandlers struct {
	service services.TranslationService
}

// NewTranslationHandlers builds translation handlers backed by the given service.
func NewTranslationHandlers(service services.TranslationService) (*TranslationHandlers, error) {
	if service == nil {
		return nil, errors.New("translation handlers: service is required")
	}
	return &TranslationHandlers{service: service}, nil
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

type translateResponse struct {
	OriginalText   string   `json:"originalText,omitempty"`
	Translation    string   `json:"translation"`
	MatchType      string   `json:"matchType"`
	SourceLang     string   `json:"sourceLang,omitempty"`
	TargetLang     string   `json:"targetLang,omitempty"`
	FuzzyScore     int      `json:"fuzzyMatchScore,omitempty"`
	MatchedWord    string   `json:"matchedWord,omitempty"`
	Note           string   `json:"note,omitempty"`
	Suggestion     string   `json:"suggestion,omitempty"`
	SupportedPairs []string `json:"supportedPairs,omitempty"`
}

// Translate resolves text through the lookup tiers and renders the result.
func (h *TranslationHandlers) Translate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readLimitedBody(r, maxTranslateBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req translateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	result, err := h.service.Translate(ctx, services.TranslateQuery{
		Text:       req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
	})
	if err != nil {
		writeTranslateError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildTranslateResponse(result))
}

func buildTranslateResponse(result domain.TranslationResult) translateResponse {
	return translateResponse{
		OriginalText: result.OriginalText,
		Translation:  result.Translation,
		MatchType:    string(result.MatchType),
		SourceLang:   result.SourceLanguage,
		TargetLang:   result.TargetLanguage,
		FuzzyScore:   result.FuzzyScore,
		MatchedWord:  result.MatchedWord,
		Note:         result.Note,
		Suggestion:   result.Suggestion,
	}
}

func writeTranslateError(ctx context.Context, w http.ResponseWriter, err error) {
	var unsupported *services.UnsupportedPairError
	var noMatch *services.NoMatchError

	switch {
	case errors.Is(err, services.ErrTranslationMissingText):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "no text provided for translation", http.StatusBadRequest))
	case errors.Is(err, services.ErrTranslationMissingLanguages):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "source or target language not specified", http.StatusBadRequest))
	case errors.As(err, &unsupported):
		writeJSONResponse(w, http.StatusNotFound, translateResponse{
			Translation:    fmt.Sprintf("Translation between %s and %s is not currently supported", unsupported.SourceLang, unsupported.TargetLang),
			MatchType:      string(domain.MatchTypeNone),
			SupportedPairs: unsupported.SupportedPairs,
		})
	case errors.As(err, &noMatch):
		writeJSONResponse(w, http.StatusNotFound, translateResponse{
			OriginalText: noMatch.Text,
			Translation:  fmt.Sprintf("No translation found for '%s'", noMatch.Text),
			MatchType:    string(domain.MatchTypeNone),
			SourceLang:   noMatch.SourceLang,
			TargetLang:   noMatch.TargetLang,
			Suggestion:   "Consider contributing a translation",
		})
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "failed to resolve translation", http.StatusInternalServerError))
	}
}

func writeBodyError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errEmptyBody):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body is required", http.StatusBadRequest))
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds limit", http.StatusRequestEntityTooLarge))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "unable to read request body", http.StatusBadRequest))
	}
}

func readLimitedBody(r *http.Request, limit int64) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, errEmptyBody
	}
	if limit <= 0 {
		limit = maxTranslateBodySize
	}
	reader := io.LimitReader(r.Body, limit+1)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errEmptyBody
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
