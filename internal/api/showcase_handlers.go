package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/ec-showcase/internal/api/middleware"
	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/example/ec-showcase/internal/readmodel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivateRequest is sent when a shopper follows a showcase card
type ActivateRequest struct {
	CollectionSlug string           `json:"collection_slug"`
	Variant        showcase.Variant `json:"variant,omitempty"`
	Position       int              `json:"position"`
	SessionID      string           `json:"session_id,omitempty"`
}

// ActivateCard returns the card's navigation target and records the activation
func (h *Handlers) ActivateCard(w http.ResponseWriter, r *http.Request) {
	var req ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CollectionSlug == "" {
		respondJSONError(w, "collection_slug is required", http.StatusBadRequest)
		return
	}
	if req.Variant != "" && !req.Variant.Valid() {
		respondJSONError(w, ErrInvalidVariant.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.queryHandler.Activate(req.CollectionSlug)
	if err != nil {
		respondJSONError(w, "Collection not found", http.StatusNotFound)
		return
	}

	if h.publisher != nil {
		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.New().String()
		}
		event := showcase.CardActivated{
			SessionID:      sessionID,
			CollectionSlug: view.Collection.Slug,
			Variant:        req.Variant,
			Position:       req.Position,
			Href:           view.Href,
			ActivatedAt:    time.Now().UTC(),
		}
		// the shopper navigates regardless of whether the event was recorded
		if _, err := h.publisher.PublishEvent(r.Context(), view.Collection.Slug, showcase.AggregateType, showcase.EventCardActivated, event); err != nil {
			h.logger.Warn("publishing card activation",
				zap.String("collection", view.Collection.Slug),
				zap.Error(err))
		}
	}

	respondJSON(w, http.StatusOK, view)
}

// ListActivations returns activation tallies per collection
func (h *Handlers) ListActivations(w http.ResponseWriter, r *http.Request) {
	if h.activations == nil {
		respondJSON(w, http.StatusOK, []readmodel.CollectionActivationsReadModel{})
		return
	}
	respondJSON(w, http.StatusOK, h.activations.Activations())
}

// PreviewLayout assembles a candidate layout without installing it
func (h *Handlers) PreviewLayout(w http.ResponseWriter, r *http.Request) {
	var cfg showcase.LayoutConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	preview := h.queryHandler.PreviewLayout(cfg)
	h.logger.Info("layout previewed",
		zap.String("operator", middleware.GetOperator(r.Context())),
		zap.Bool("valid", preview.Valid))
	respondJSON(w, http.StatusOK, preview)
}

// GetStreamStats reports open rotation stream sessions
func (h *Handlers) GetStreamStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.hub.Stats())
}
