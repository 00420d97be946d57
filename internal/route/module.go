package route

import (
	apphttp "safenav_gateway/internal/http"
	"safenav_gateway/platform/config"
	"safenav_gateway/platform/events"
	"safenav_gateway/platform/logger"
)

// Module wires the safe-route HTTP route.
type Module struct {
	handler *Handler
	client  *Client
}

func NewModule(cfg config.UpstreamConfig, bus events.Bus, log *logger.Logger) *Module {
	client := NewClient(cfg.GetAdvisoryBaseURL(), cfg.GetUpstreamTimeout(), log)
	orchestrator := NewOrchestrator(client, bus, log)
	return &Module{
		handler: NewHandler(orchestrator),
		client:  client,
	}
}

func (m *Module) Name() string {
	return "route"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/route")
	group.POST("/safe", m.handler.Safe)
}

// Client exposes the upstream client so per-session orchestrators can
// share it.
func (m *Module) Client() *Client {
	return m.client
}

var _ apphttp.Module = (*Module)(nil)
