package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait     = 10 * time.Second
	wsPongWait      = 60 * time.Second
	wsPingEvery     = (wsPongWait * 9) / 10
	wsMaxMessage    = 1 << 12
	kpiPushDefault  = time.Second
	kpiPushMax      = 10 * time.Second
	kpiPushMaxMilli = int(kpiPushMax / time.Millisecond)
)

type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Origins are enforced by the CORS layer in front of the engine.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConnect streams the dashboard KPI snapshot to the client.
// @Summary      KPI live feed
// @Tags         dashboard
// @Param        interval     query  string  false  "push interval, e.g. 2s (max 10s)"
// @Param        interval_ms  query  int     false  "push interval in milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	every := kpiPushInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	h.metrics.WSConnected()
	defer h.metrics.WSDisconnected()

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	closed := make(chan struct{})
	go h.drainClient(conn, closed)

	h.pushKPIs(c.Request.Context(), conn, every, closed)
}

// pushKPIs writes a snapshot right away, then on every tick until the client
// goes away or a write fails.
func (h *Handler) pushKPIs(ctx context.Context, conn *websocket.Conn, every time.Duration, closed <-chan struct{}) {
	if err := h.writeKPIs(ctx, conn); err != nil {
		h.wsLog("ws_initial_write_failed", err)
		return
	}

	push := time.NewTicker(every)
	defer push.Stop()
	ping := time.NewTicker(wsPingEvery)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.wsLog("ws_ping_failed", err)
				return
			}
		case <-push.C:
			if err := h.writeKPIs(ctx, conn); err != nil {
				h.wsLog("ws_write_failed", err)
				return
			}
		}
	}
}

// kpiPushInterval accepts ?interval=2s or ?interval_ms=2000, falling back to
// one second when missing or out of range.
func kpiPushInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= kpiPushMax {
			return d
		}
	}
	if s := c.Query("interval_ms"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= kpiPushMaxMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return kpiPushDefault
}

// drainClient reads until the connection breaks so control frames get handled.
func (h *Handler) drainClient(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.wsLog("ws_read_closed", err)
			return
		}
	}
}

func (h *Handler) writeKPIs(ctx context.Context, conn *websocket.Conn) error {
	snap, err := h.services.Dashboard.KPIs(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_get_kpis_failed", "err", err)
		}
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(wsEnvelope{Type: "kpis", Data: snap})
}

func (h *Handler) wsLog(event string, err error) {
	if h.log != nil {
		h.log.Infow(event, "err", err)
	}
}
