package search

import (
	"time"

	apphttp "safenav_gateway/internal/http"
	"safenav_gateway/internal/risk"
	"safenav_gateway/internal/route"
	"safenav_gateway/platform/config"
	"safenav_gateway/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Config combines the configuration interfaces the search module needs.
type Config interface {
	config.SearchConfig
	config.HTTPConfig
}

// Module exposes the interactive search channel. It borrows the place
// resolver and the upstream clients from their owning modules and spins
// up per-connection session state around them.
type Module struct {
	resolver    resolver
	routeClient *route.Client
	riskClient  *risk.Client
	debounce    time.Duration
	minQuery    int
	upgrader    websocket.Upgrader
	log         *logger.Logger
}

func NewModule(cfg Config, res resolver, routeClient *route.Client, riskClient *risk.Client, log *logger.Logger) *Module {
	return &Module{
		resolver:    res,
		routeClient: routeClient,
		riskClient:  riskClient,
		debounce:    cfg.GetSearchDebounce(),
		minQuery:    cfg.GetSearchMinQueryLen(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(cfg.GetCORSAllowAll(), cfg.GetCORSOrigins()),
		},
		log: log,
	}
}

func (m *Module) Name() string {
	return "search"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/search")
	group.GET("/channel", m.serveChannel)
}

// serveChannel upgrades the request and runs the session until the
// client disconnects.
func (m *Module) serveChannel(c *gin.Context) {
	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		m.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	ch := newChannel(conn, m, m.log)
	ch.log.Info("search channel opened", "remote", conn.RemoteAddr().String())
	ch.run()
	ch.log.Info("search channel closed", "remote", conn.RemoteAddr().String())
}

var _ apphttp.Module = (*Module)(nil)
