package places

import (
	apphttp "safenav_gateway/internal/http"
	"safenav_gateway/platform/config"
	"safenav_gateway/platform/logger"
)

// Config combines the configuration interfaces the places module needs.
type Config interface {
	config.UpstreamConfig
	config.GeocoderConfig
	config.SearchConfig
	config.SuggestionCacheConfig
}

// Module wires the place resolution HTTP routes and owns the resolver
// shared with the interactive search channel.
type Module struct {
	handler  *Handler
	resolver *Resolver
	cache    *SuggestionCache
}

func NewModule(cfg Config, log *logger.Logger) *Module {
	client := NewGeocoderClient(cfg.GetGeocoderBaseURL(), cfg.GetUpstreamTimeout(), log)
	catalog := SeoulCatalog(cfg.GetSearchMinQueryLen())

	var cache *SuggestionCache
	if cfg.IsSuggestionCacheEnabled() {
		cache = NewSuggestionCache(cfg.GetRedisAddr(), cfg.GetSuggestionCacheTTL(), log)
	}

	resolver := NewResolver(
		client,
		catalog,
		cache,
		cfg.GetGeocoderRatePerSec(),
		cfg.GetGeocoderBurst(),
		cfg.GetSearchMinQueryLen(),
		log,
	)

	return &Module{
		handler:  NewHandler(resolver),
		resolver: resolver,
		cache:    cache,
	}
}

func (m *Module) Name() string {
	return "places"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/places")
	group.GET("/suggest", m.handler.Suggest)
}

// Resolver exposes the shared resolver for the search module.
func (m *Module) Resolver() *Resolver {
	return m.resolver
}

// Close releases the suggestion cache connection, if any.
func (m *Module) Close() error {
	if m.cache != nil {
		return m.cache.Close()
	}
	return nil
}

var _ apphttp.Module = (*Module)(nil)
