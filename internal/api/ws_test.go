package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTicker struct {
	ch chan time.Time
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               {}

// manualTickers hands every new clock a ticker the test fires by hand
func manualTickers() (showcase.ClockOption, <-chan *manualTicker) {
	created := make(chan *manualTicker, 8)
	opt := showcase.WithTicker(func(time.Duration) showcase.Ticker {
		t := &manualTicker{ch: make(chan time.Time)}
		created <- t
		return t
	})
	return opt, created
}

type fixedInterval time.Duration

func (f fixedInterval) RotationInterval() time.Duration { return time.Duration(f) }

func dialStream(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/showcase" + query
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return ws
}

func readRotation(t *testing.T, ws *websocket.Conn) RotationMessage {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg RotationMessage
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}

// ============================================
// Rotation Stream Tests
// ============================================

func TestStreamShowcase_PushesEachTick(t *testing.T) {
	opt, tickers := manualTickers()
	router, handlers := newTestRouter(t, nil,
		WithSessionClockOptions(opt),
		WithIntervals(fixedInterval(3*time.Second)))
	srv := httptest.NewServer(router)
	defer srv.Close()

	ws := dialStream(t, srv, "?variant=compact")
	defer ws.Close()

	first := readRotation(t, ws)
	assert.Equal(t, "rotation", first.Type)
	assert.Equal(t, showcase.VariantCompact, first.Variant)
	assert.Equal(t, 0, first.Tick)
	assert.Equal(t, int64(3000), first.RotationIntervalMs)
	require.Len(t, first.Cards, 4)
	for _, c := range first.Cards {
		assert.Equal(t, showcase.StrategySingle, c.Strategy)
	}

	ticker := <-tickers
	ticker.ch <- time.Now()

	second := readRotation(t, ws)
	assert.Equal(t, 1, second.Tick)
	require.Len(t, second.Cards, 4)
	assert.Equal(t, 1, handlers.Hub().Stats().Sessions)
}

func TestStreamShowcase_SessionsAreIndependent(t *testing.T) {
	opt, tickers := manualTickers()
	router, _ := newTestRouter(t, nil, WithSessionClockOptions(opt))
	srv := httptest.NewServer(router)
	defer srv.Close()

	a := dialStream(t, srv, "")
	defer a.Close()
	assert.Equal(t, showcase.VariantWide, readRotation(t, a).Variant)
	tickerA := <-tickers

	b := dialStream(t, srv, "")
	defer b.Close()
	readRotation(t, b)
	<-tickers

	tickerA.ch <- time.Now()
	assert.Equal(t, 1, readRotation(t, a).Tick)
	tickerA.ch <- time.Now()
	assert.Equal(t, 2, readRotation(t, a).Tick)

	// b's clock never fired
	require.NoError(t, b.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := b.ReadMessage()
	assert.Error(t, err)
}

func TestStreamShowcase_DisconnectStopsSession(t *testing.T) {
	opt, _ := manualTickers()
	router, handlers := newTestRouter(t, nil, WithSessionClockOptions(opt))
	srv := httptest.NewServer(router)
	defer srv.Close()

	ws := dialStream(t, srv, "?variant=wide")
	readRotation(t, ws)
	require.Equal(t, 1, handlers.Hub().Stats().Sessions)

	require.NoError(t, ws.Close())

	assert.Eventually(t, func() bool {
		return handlers.Hub().Stats().Sessions == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStreamShowcase_CloseAll(t *testing.T) {
	opt, _ := manualTickers()
	router, handlers := newTestRouter(t, nil, WithSessionClockOptions(opt))
	srv := httptest.NewServer(router)
	defer srv.Close()

	ws := dialStream(t, srv, "")
	defer ws.Close()
	readRotation(t, ws)

	handlers.Hub().CloseAll()

	assert.Eventually(t, func() bool {
		return handlers.Hub().Stats().Sessions == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStreamShowcase_InvalidVariant(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := serve(router, http.MethodGet, "/ws/showcase?variant=tv", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStreamStats(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := serve(router, http.MethodGet, "/api/showcase/streams", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[Stats](t, rec).Sessions)
}

// ============================================
// SharedClock Tests
// ============================================

func TestSharedClock_Reset(t *testing.T) {
	opt, tickers := manualTickers()
	clock := NewSharedClock(time.Second, opt)
	defer clock.Stop()

	first := <-tickers
	first.ch <- time.Now()
	assert.Eventually(t, func() bool { return clock.Tick() == 1 }, time.Second, 5*time.Millisecond)

	clock.Reset(time.Second)
	assert.Equal(t, 1, clock.Tick(), "same interval keeps the running clock")

	clock.Reset(2 * time.Second)
	<-tickers
	assert.Equal(t, 0, clock.Tick())
	assert.Equal(t, 2*time.Second, clock.Interval())
}
