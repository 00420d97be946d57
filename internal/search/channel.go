package search

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"safenav_gateway/internal/geo"
	"safenav_gateway/internal/notify"
	"safenav_gateway/internal/risk"
	"safenav_gateway/internal/route"
	"safenav_gateway/platform/events"
	"safenav_gateway/platform/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Inbound message types.
const (
	msgTextChanged  = "text_changed"
	msgFocus        = "focus"
	msgSelect       = "select"
	msgBlurOutside  = "blur_outside"
	msgSetPosition  = "set_position"
	msgRouteRequest = "route_request"
	msgRiskCheck    = "risk_check"
)

// Outbound message types.
const (
	msgSession = "session"
	msgRoute   = "route"
	msgRisk    = "risk"
	msgNotice  = "notice"
	msgError   = "error"
)

// inbound is the client-to-server envelope.
type inbound struct {
	Type      string   `json:"type"`
	Role      string   `json:"role,omitempty"`
	Text      string   `json:"text,omitempty"`
	Index     *int     `json:"index,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// outbound is the server-to-client envelope.
type outbound struct {
	Type string      `json:"type"`
	Role string      `json:"role,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// Channel is one interactive session. Each connection gets its own
// event bus, search controllers, route orchestrator, and risk probe, so
// concurrent sessions never see each other's suggestions, results, or
// notices.
type Channel struct {
	id   string
	conn *websocket.Conn
	send chan outbound
	bus  *events.InMemoryBus
	log  *logger.Logger

	controllers  map[string]*Controller
	orchestrator *route.Orchestrator
	probe        *risk.Probe

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newChannel(conn *websocket.Conn, m *Module, log *logger.Logger) *Channel {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()
	log = log.WithChannelID(id)

	ch := &Channel{
		id:     id,
		conn:   conn,
		send:   make(chan outbound, sendBuffer),
		bus:    events.NewInMemoryBus(log),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}

	ch.orchestrator = route.NewOrchestrator(m.routeClient, ch.bus, log)
	ch.probe = risk.NewProbe(m.riskClient, ch.bus, log)
	ch.controllers = map[string]*Controller{
		route.RoleStart: NewController(ctx, route.RoleStart, m.resolver, ch.bus, m.debounce, m.minQuery, ch.pushSession, log),
		route.RoleEnd:   NewController(ctx, route.RoleEnd, m.resolver, ch.bus, m.debounce, m.minQuery, ch.pushSession, log),
	}
	ch.bus.Subscribe(notify.NoticeEventName, ch)

	return ch
}

// run reads client messages until the connection drops, then tears the
// session down. The write pump runs alongside it.
func (ch *Channel) run() {
	go ch.writePump()
	ch.readPump()
	ch.close()
}

func (ch *Channel) close() {
	ch.closeOnce.Do(func() {
		ch.cancel()
		for _, c := range ch.controllers {
			c.Close()
		}
		ch.bus.Unsubscribe(notify.NoticeEventName, ch)
		_ = ch.conn.Close()
	})
}

// Handle implements events.Handler: session notices are forwarded to
// the client as toast payloads.
func (ch *Channel) Handle(ctx context.Context, event events.Event) error {
	if notice, ok := event.(notify.NoticeEvent); ok {
		ch.push(outbound{Type: msgNotice, Data: notice})
	}
	return nil
}

func (ch *Channel) pushSession(role string, snap Snapshot) {
	ch.push(outbound{Type: msgSession, Role: role, Data: snap})
}

// push enqueues a message without blocking; a session that cannot keep
// up loses the message rather than stalling a controller.
func (ch *Channel) push(msg outbound) {
	select {
	case <-ch.ctx.Done():
	case ch.send <- msg:
	default:
		ch.log.Warn("search channel send buffer full, dropping message", "type", msg.Type)
	}
}

func (ch *Channel) readPump() {
	ch.conn.SetReadLimit(maxMessageSize)
	_ = ch.conn.SetReadDeadline(time.Now().Add(pongWait))
	ch.conn.SetPongHandler(func(string) error {
		_ = ch.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := ch.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				ch.log.Warn("search channel read failed", "error", err)
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			ch.push(outbound{Type: msgError, Data: "malformed message"})
			continue
		}
		ch.dispatch(msg)
	}
}

func (ch *Channel) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = ch.conn.Close()
	}()

	for {
		select {
		case <-ch.ctx.Done():
			_ = ch.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = ch.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case msg := <-ch.send:
			_ = ch.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ch.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = ch.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ch.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (ch *Channel) dispatch(msg inbound) {
	switch msg.Type {
	case msgTextChanged:
		if c, ok := ch.controller(msg.Role); ok {
			c.TextChanged(msg.Text)
		}

	case msgFocus:
		if c, ok := ch.controller(msg.Role); ok {
			c.Focus()
		}

	case msgSelect:
		if msg.Index == nil {
			ch.push(outbound{Type: msgError, Role: msg.Role, Data: "select requires an index"})
			return
		}
		if c, ok := ch.controller(msg.Role); ok {
			c.Select(*msg.Index)
		}

	case msgBlurOutside:
		// Every controller hides its list; suggestions are retained.
		ch.bus.Publish(ch.ctx, NewDismissEvent())

	case msgSetPosition:
		if msg.Latitude == nil || msg.Longitude == nil {
			ch.push(outbound{Type: msgError, Role: msg.Role, Data: "set_position requires latitude and longitude"})
			return
		}
		if c, ok := ch.controller(msg.Role); ok {
			c.SetCoordinate(geo.Coordinate{Lat: *msg.Latitude, Lng: *msg.Longitude})
		}

	case msgRouteRequest:
		// Upstream calls run off the read loop so later messages can
		// still supersede an in-flight request.
		start := ch.endpoint(route.RoleStart)
		end := ch.endpoint(route.RoleEnd)
		go func() {
			result, err := ch.orchestrator.RequestEndpoints(ch.ctx, start, end)
			if err != nil {
				return
			}
			ch.push(outbound{Type: msgRoute, Data: result})
		}()

	case msgRiskCheck:
		if msg.Latitude == nil || msg.Longitude == nil {
			ch.push(outbound{Type: msgError, Data: "risk_check requires latitude and longitude"})
			return
		}
		point := geo.Coordinate{Lat: *msg.Latitude, Lng: *msg.Longitude}
		go func() {
			result, err := ch.probe.Check(ch.ctx, point)
			if err != nil {
				return
			}
			ch.push(outbound{Type: msgRisk, Data: result})
		}()

	default:
		ch.push(outbound{Type: msgError, Data: "unknown message type: " + msg.Type})
	}
}

func (ch *Channel) controller(role string) (*Controller, bool) {
	c, ok := ch.controllers[role]
	if !ok {
		ch.push(outbound{Type: msgError, Data: "unknown role: " + role})
	}
	return c, ok
}

func (ch *Channel) endpoint(role string) route.Endpoint {
	snap := ch.controllers[role].Snapshot()
	return route.Endpoint{Text: snap.Query, Selected: snap.Selected}
}

// checkOrigin builds the websocket origin policy from the CORS
// settings. Requests without an Origin header (non-browser clients)
// are accepted.
func checkOrigin(allowAll bool, origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
