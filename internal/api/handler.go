package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/scry-cards/internal/api/shared"
	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/render"
	"github.com/phrazzld/scry-cards/internal/service"
	"github.com/phrazzld/scry-cards/internal/stats"
	"github.com/phrazzld/scry-cards/internal/store"
)

// CardService is the part of service.CardService the handlers use.
type CardService interface {
	RegisterPaths(ctx context.Context, paths []string) (service.RegisterResult, error)
	Stats(ctx context.Context, cards []domain.Card) (*stats.CardStats, error)
	DueQueue(ctx context.Context, cards []domain.Card, limits service.DueLimits) ([]store.CardRecord, error)
}

// Handler serves the reporting endpoints for a fixed set of card paths.
type Handler struct {
	svc    CardService
	paths  []string
	logger *slog.Logger
}

// NewHandler creates a Handler reporting on the cards found under paths.
func NewHandler(svc CardService, paths []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		svc:    svc,
		paths:  paths,
		logger: logger.With(slog.String("component", "api_handler")),
	}
}

// DueCardsParams are the query parameters of GET /api/cards/due.
type DueCardsParams struct {
	Limit    int `validate:"gte=-1"`
	NewLimit int `validate:"gte=-1"`
}

// DueCard is one entry of the due queue.
type DueCard struct {
	Hash        string     `json:"card_hash"`
	FilePath    string     `json:"file_path"`
	Line        int        `json:"line"`
	Kind        string     `json:"kind"`
	PromptHTML  string     `json:"prompt_html"`
	AnswerHTML  string     `json:"answer_html"`
	ReviewCount int64      `json:"review_count"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// DueCardsResponse is the body of GET /api/cards/due.
type DueCardsResponse struct {
	Cards    []DueCard `json:"cards"`
	Warnings []string  `json:"warnings,omitempty"`
}

// register registers the configured paths, logging path warnings.
func (h *Handler) register(ctx context.Context) (service.RegisterResult, error) {
	result, err := h.svc.RegisterPaths(ctx, h.paths)
	if err != nil {
		return service.RegisterResult{}, err
	}

	log := logger.FromContextOrDefault(ctx, h.logger)
	for _, w := range result.Warnings {
		log.Warn("card path warning", slog.String("warning", w))
	}
	return result, nil
}

func (h *Handler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// GetStats handles GET /api/stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.register(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	cs, err := h.svc.Stats(r.Context(), result.Cards)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cs.Report())
}

// GetDueCards handles GET /api/cards/due?limit=N&new_limit=N.
func (h *Handler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	var params DueCardsParams
	var err error
	if params.Limit, err = shared.QueryInt(r, "limit", service.NoLimit); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if params.NewLimit, err = shared.QueryInt(r, "new_limit", service.NoLimit); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(params); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "limits must be -1 or greater", err)
		return
	}

	result, err := h.register(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	queue, err := h.svc.DueQueue(r.Context(), result.Cards,
		service.DueLimits{CardLimit: params.Limit, NewCardLimit: params.NewLimit})
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	resp := DueCardsResponse{Cards: make([]DueCard, 0, len(queue)), Warnings: result.Warnings}
	for _, rec := range queue {
		prompt, answer, err := render.CardHTML(rec.Card)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"An unexpected error occurred", err)
			return
		}
		resp.Cards = append(resp.Cards, DueCard{
			Hash:        rec.Card.Hash,
			FilePath:    rec.Card.FilePath,
			Line:        rec.Card.Range.Start + 1,
			Kind:        string(rec.Card.Kind()),
			PromptHTML:  prompt,
			AnswerHTML:  answer,
			ReviewCount: rec.State.ReviewCount,
			DueDate:     rec.State.DueDate,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
