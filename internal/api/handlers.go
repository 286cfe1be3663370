package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/example/ec-showcase/internal/infrastructure/kafka"
	"github.com/example/ec-showcase/internal/query"
	"github.com/example/ec-showcase/internal/readmodel"
	"github.com/gorilla/schema"
	"go.uber.org/zap"
)

var (
	ErrInvalidVariant = errors.New("invalid variant")
	ErrInvalidTick    = errors.New("invalid tick")
)

// TickSource reports the server-wide rotation position
type TickSource interface {
	Tick() int
	Interval() time.Duration
}

// IntervalSource supplies the live rotation interval for new stream sessions
type IntervalSource interface {
	RotationInterval() time.Duration
}

// Publisher sends domain events to the event bus
type Publisher interface {
	PublishEvent(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (kafka.Event, error)
}

// ActivationReader serves the activation tallies
type ActivationReader interface {
	Activations() []readmodel.CollectionActivationsReadModel
}

type Handlers struct {
	queryHandler *query.Handler
	clock        TickSource
	intervals    IntervalSource
	publisher    Publisher
	activations  ActivationReader
	hub          *Hub
	decoder      *schema.Decoder
	clockOpts    []showcase.ClockOption
	logger       *zap.Logger
}

type Option func(*Handlers)

func WithPublisher(p Publisher) Option {
	return func(h *Handlers) { h.publisher = p }
}

func WithActivations(a ActivationReader) Option {
	return func(h *Handlers) { h.activations = a }
}

func WithIntervals(s IntervalSource) Option {
	return func(h *Handlers) { h.intervals = s }
}

// WithSessionClockOptions is applied to the clock of every stream session
func WithSessionClockOptions(opts ...showcase.ClockOption) Option {
	return func(h *Handlers) { h.clockOpts = opts }
}

func NewHandlers(queryHandler *query.Handler, clock TickSource, logger *zap.Logger, opts ...Option) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	h := &Handlers{
		queryHandler: queryHandler,
		clock:        clock,
		hub:          NewHub(),
		decoder:      decoder,
		logger:       logger.Named("api"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hub tracks the open stream sessions
func (h *Handlers) Hub() *Hub {
	return h.hub
}

// Homepage Handlers

func (h *Handlers) GetHomepage(w http.ResponseWriter, r *http.Request) {
	variants, err := parseVariants(r.URL.Query().Get("variant"))
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	tick, err := h.requestTick(r)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := h.queryHandler.Homepage(r.Context(), variants, tick, h.clock.Interval())
	respondJSON(w, http.StatusOK, view)
}

// requestTick honours an explicit tick and falls back to the shared clock
func (h *Handlers) requestTick(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("tick")
	if raw == "" {
		return h.clock.Tick(), nil
	}
	tick, err := strconv.Atoi(raw)
	if err != nil || tick < 0 {
		return 0, ErrInvalidTick
	}
	return tick, nil
}

func parseVariants(raw string) ([]showcase.Variant, error) {
	if raw == "" {
		return nil, nil
	}
	v := showcase.Variant(raw)
	if !v.Valid() {
		return nil, ErrInvalidVariant
	}
	return []showcase.Variant{v}, nil
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

func extractPathParam(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}
