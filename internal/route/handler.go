package route

import (
	"net/http"

	"safenav_gateway/internal/geo"
	"safenav_gateway/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// EndpointRequest carries one endpoint: either free text (a raw
// "lat,lng" entry) or the coordinate of a selected suggestion.
type EndpointRequest struct {
	Text      string   `json:"text"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r EndpointRequest) toEndpoint() Endpoint {
	ep := Endpoint{Text: r.Text}
	if r.Latitude != nil && r.Longitude != nil {
		ep.Selected = &geo.Coordinate{Lat: *r.Latitude, Lng: *r.Longitude}
	}
	return ep
}

// SafeRouteRequest is the route request body.
type SafeRouteRequest struct {
	Start EndpointRequest `json:"start" binding:"required"`
	End   EndpointRequest `json:"end" binding:"required"`
}

// Handler exposes the safe-route endpoint.
type Handler struct {
	orchestrator *Orchestrator
}

func NewHandler(orchestrator *Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// Safe handles POST /api/v1/route/safe
func (h *Handler) Safe(c *gin.Context) {
	var req SafeRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "start and end endpoints are required", nil)
		return
	}

	result, err := h.orchestrator.RequestEndpoints(c.Request.Context(), req.Start.toEndpoint(), req.End.toEndpoint())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
