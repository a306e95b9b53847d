package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Jaydot33/proppulse-mvp/internal/arbitrage"
	"github.com/Jaydot33/proppulse-mvp/internal/cache"
	"github.com/Jaydot33/proppulse-mvp/internal/providers/oddsapi"
	"github.com/Jaydot33/proppulse-mvp/pkg/models"
)

const Version = "1.0.0"

// Sports maps URL sport names to upstream sport keys
var Sports = map[string]string{
	"nba":   "basketball_nba",
	"ncaab": "basketball_ncaab",
}

// PropsAssembler builds or replays the annotated prop list for a sport
type PropsAssembler interface {
	Assemble(ctx context.Context, sport, sportKey string) ([]models.Prop, error)
	CachedProps(ctx context.Context, sport string) ([]models.Prop, bool)
}

// AlertSender delivers prop alerts to an outbound webhook
type AlertSender interface {
	Configured() bool
	SendAlert(ctx context.Context, alert models.AlertRequest) error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	assembler PropsAssembler
	notifier  AlertSender
	store     *cache.Store
}

// NewHandler creates a new handler with dependencies
func NewHandler(assembler PropsAssembler, notifier AlertSender, store *cache.Store) *Handler {
	return &Handler{
		assembler: assembler,
		notifier:  notifier,
		store:     store,
	}
}

// Root returns the service banner
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "PropPulse MVP - NBA Props w/ X Edge",
		"version": Version,
	})
}

// HealthCheck reports service and cache health. A dead cache is reported,
// not treated as unhealthy: the service works without it.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"redis":     h.store.Ping(ctx),
		"timestamp": time.Now().UTC(),
	})
}

// GetProps returns the annotated prop list for a sport
func (h *Handler) GetProps(w http.ResponseWriter, r *http.Request) {
	sport := chi.URLParam(r, "sport")
	sportKey, ok := Sports[sport]
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown sport %q", sport), nil)
		return
	}

	// Sequential per-player sentiment calls dominate latency; leave room
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	props, err := h.assembler.Assemble(ctx, sport, sportKey)
	if err != nil {
		if errors.Is(err, oddsapi.ErrFetch) {
			respondError(w, http.StatusInternalServerError, "odds fetch failed", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to assemble props", err)
		return
	}

	respondJSON(w, http.StatusOK, props)
}

// GetArbs returns ranked cross-book arbitrage opportunities for a sport,
// reusing the cached prop snapshot when one exists.
// Query params: sport (default nba)
func (h *Handler) GetArbs(w http.ResponseWriter, r *http.Request) {
	sport := r.URL.Query().Get("sport")
	if sport == "" {
		sport = "nba"
	}

	sportKey, ok := Sports[sport]
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown sport %q", sport), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	props, cached := h.assembler.CachedProps(ctx, sport)
	if !cached {
		var err error
		props, err = h.assembler.Assemble(ctx, sport, sportKey)
		if err != nil {
			if errors.Is(err, oddsapi.ErrFetch) {
				respondError(w, http.StatusInternalServerError, "odds fetch failed", err)
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to assemble props", err)
			return
		}
	}

	arbs := arbitrage.Detect(props)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"arbs":  arbs,
		"count": len(arbs),
	})
}

// PostAlert forwards a prop alert to the configured webhook
func (h *Handler) PostAlert(w http.ResponseWriter, r *http.Request) {
	var alert models.AlertRequest
	if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
		respondError(w, http.StatusBadRequest, "invalid alert body", err)
		return
	}

	if !h.notifier.Configured() {
		respondError(w, http.StatusBadRequest, "no webhook configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		respondError(w, http.StatusInternalServerError, "alert delivery failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "sent",
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("error encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		fmt.Printf("error: %s - %v\n", message, err)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		fmt.Printf("error encoding error response: %v\n", err)
	}
}
