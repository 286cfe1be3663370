package api

import (
	"context"
	"net/http"
	"time"

	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/example/ec-showcase/internal/query"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RotationMessage is pushed to a stream session on connect and on every tick
type RotationMessage struct {
	Type               string           `json:"type"`
	Variant            showcase.Variant `json:"variant"`
	Tick               int              `json:"tick"`
	RotationIntervalMs int64            `json:"rotationIntervalMs"`
	Cards              []query.CardView `json:"cards"`
}

// StreamShowcase upgrades to a websocket and pushes the rotating cards of
// one variant. Each session owns its clock, stopped on disconnect.
func (h *Handlers) StreamShowcase(w http.ResponseWriter, r *http.Request) {
	variant := showcase.VariantWide
	if raw := r.URL.Query().Get("variant"); raw != "" {
		variant = showcase.Variant(raw)
		if !variant.Valid() {
			respondJSONError(w, ErrInvalidVariant.Error(), http.StatusBadRequest)
			return
		}
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.hub.Add(ws)
	h.logger.Debug("stream connected", zap.String("variant", string(variant)))

	interval := h.clock.Interval()
	if h.intervals != nil {
		interval = h.intervals.RotationInterval()
	}
	clock := showcase.NewRotationClock(interval, h.clockOpts...)
	ticks, _ := clock.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())

	// incoming messages are ignored; a read error means the peer left
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(tick int) error {
		msg := RotationMessage{
			Type:               "rotation",
			Variant:            variant,
			Tick:               tick,
			RotationIntervalMs: clock.Interval().Milliseconds(),
			Cards:              h.queryHandler.RotatingCards(ctx, variant, tick),
		}
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		return ws.WriteJSON(msg)
	}

	if err := send(clock.Tick()); err == nil {
	loop:
		for {
			select {
			case <-closed:
				break loop
			case tick, ok := <-ticks:
				if !ok {
					break loop
				}
				if err := send(tick); err != nil {
					break loop
				}
			}
		}
	}

	cancel()
	clock.Stop()
	h.hub.Remove(ws)
	<-closed
	h.logger.Debug("stream disconnected", zap.String("variant", string(variant)))
}
