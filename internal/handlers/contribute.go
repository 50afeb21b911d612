package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lingobridge/api/internal/platform/httpx"
	"github.com/lingobridge/api/internal/services"
)

const maxContributeBodySize = 1 << 20

// ContributionHandlers serves the contribution ingestion endpoint.
type ContributionHandlers struct {
	service services.ContributionService
}

// NewContributionHandlers builds contribution handlers backed by the given service.
func NewContributionHandlers(service services.ContributionService) (*ContributionHandlers, error) {
	if service == nil {
		return nil, errors.New("contribution handlers: service is required")
	}
	return &ContributionHandlers{service: service}, nil
}

type contributeRequest struct {
	SourceText     string `json:"source_text"`
	TargetText     string `json:"target_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	SourceExample  string `json:"source_example"`
	TargetExample  string `json:"target_example"`
}

type contributeResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ContributionID string `json:"contribution_id"`
	Status         string `json:"status"`
	LanguagePair   string `json:"language_pair"`
}

type duplicateResponse struct {
	Error               string `json:"error"`
	ExistingTranslation string `json:"existing_translation"`
	Status              string `json:"status"`
}

// Contribute validates and stores one crowd-submitted translation.
func (h *ContributionHandlers) Contribute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readLimitedBody(r, maxContributeBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req contributeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	receipt, err := h.service.Submit(ctx, services.ContributionCommand{
		SourceText:     req.SourceText,
		TargetText:     req.TargetText,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		SourceExample:  req.SourceExample,
		TargetExample:  req.TargetExample,
	})
	if err != nil {
		writeContributeError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, contributeResponse{
		Success:        true,
		Message:        "Contribution received and pending review",
		ContributionID: receipt.ContributionID,
		Status:         string(receipt.Status),
		LanguagePair:   receipt.LanguagePair,
	})
}

func writeContributeError(ctx context.Context, w http.ResponseWriter, err error) {
	var duplicate *services.DuplicateError

	switch {
	case errors.Is(err, services.ErrContributionMissingText):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "source text and target text are required", http.StatusBadRequest))
	case errors.Is(err, services.ErrContributionMissingLanguages):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "source language and target language are required", http.StatusBadRequest))
	case errors.As(err, &duplicate):
		writeJSONResponse(w, http.StatusConflict, duplicateResponse{
			Error:               "This translation already exists",
			ExistingTranslation: duplicate.ExistingTranslation,
			Status:              "duplicate",
		})
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "failed to store contribution", http.StatusInternalServerError))
	}
}
