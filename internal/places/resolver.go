package places

import (
	"context"
	"strings"
	"unicode/utf8"

	"safenav_gateway/internal/geo"
	"safenav_gateway/platform/logger"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// geocoder is the remote place-search dependency of the resolver.
type geocoder interface {
	Search(ctx context.Context, query string) ([]geo.PlaceCandidate, error)
}

// Resolver turns free text into a ranked candidate list. The remote
// geocoder is tried first; any failure or empty result falls back to the
// local catalog. Resolve never returns an error: an empty list means "no
// matches", not a failure.
type Resolver struct {
	client   geocoder
	catalog  *Catalog
	cache    *SuggestionCache // nil when the cache is disabled
	limiter  *rate.Limiter
	group    singleflight.Group
	minQuery int
	log      *logger.Logger
}

// NewResolver creates a resolver over the given geocoder and catalog.
// cache may be nil. ratePerSec/burst shape outbound geocoder traffic.
func NewResolver(client geocoder, catalog *Catalog, cache *SuggestionCache, ratePerSec float64, burst int, minQuery int, log *logger.Logger) *Resolver {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &Resolver{
		client:   client,
		catalog:  catalog,
		cache:    cache,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSec), burst),
		minQuery: minQuery,
		log:      log,
	}
}

// Resolve returns candidates for the query in resolver order. Queries
// shorter than the minimum length yield an empty list without touching
// the network. Concurrent identical queries share one upstream call.
func (r *Resolver) Resolve(ctx context.Context, query string) []geo.PlaceCandidate {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < r.minQuery {
		return nil
	}

	if r.cache != nil {
		if places, ok := r.cache.Get(ctx, query); ok {
			return places
		}
	}

	result, err, _ := r.group.Do(strings.ToLower(query), func() (interface{}, error) {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return r.client.Search(ctx, query)
	})
	if err != nil {
		r.log.UpstreamFallback("resolve", query, err)
		return r.catalog.Lookup(query)
	}

	places := result.([]geo.PlaceCandidate)
	if len(places) == 0 {
		return r.catalog.Lookup(query)
	}

	if r.cache != nil {
		r.cache.Set(ctx, query, places)
	}
	return places
}
