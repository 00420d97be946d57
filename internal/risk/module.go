package risk

import (
	apphttp "safenav_gateway/internal/http"
	"safenav_gateway/platform/config"
	"safenav_gateway/platform/events"
	"safenav_gateway/platform/logger"
	"safenav_gateway/platform/validator"
)

// Module wires the risk probe and zone routes.
type Module struct {
	handler *Handler
	client  *Client
}

func NewModule(cfg config.UpstreamConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	client := NewClient(cfg.GetAdvisoryBaseURL(), cfg.GetUpstreamTimeout(), log)
	probe := NewProbe(client, bus, log)
	return &Module{
		handler: NewHandler(probe, client, val),
		client:  client,
	}
}

func (m *Module) Name() string {
	return "risk"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/risk")
	group.POST("/predict", m.handler.Predict)
	group.GET("/zones", m.handler.Zones)
}

// Client exposes the upstream client so per-session probes can share it.
func (m *Module) Client() *Client {
	return m.client
}

var _ apphttp.Module = (*Module)(nil)
