package risk

import (
	"net/http"

	"safenav_gateway/internal/geo"
	"safenav_gateway/platform/httpkit"
	"safenav_gateway/platform/validator"

	"github.com/gin-gonic/gin"
)

// PredictRequest is the risk probe request body. Pointers distinguish a
// missing field from a zero coordinate.
type PredictRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required" validate:"required,gte=-180,lte=180"`
}

// ZonesResponse is the citywide risk-zone list.
type ZonesResponse struct {
	Zones []geo.RiskZone `json:"zones"`
}

// Handler exposes the risk endpoints.
type Handler struct {
	probe  *Probe
	client *Client
	val    *validator.Validator
}

func NewHandler(probe *Probe, client *Client, val *validator.Validator) *Handler {
	return &Handler{probe: probe, client: client, val: val}
}

// Predict handles POST /api/v1/risk/predict
func (h *Handler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "latitude and longitude are required", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "coordinate out of range", err.Error())
		return
	}

	result, err := h.probe.Check(c.Request.Context(), geo.Coordinate{Lat: *req.Latitude, Lng: *req.Longitude})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Zones handles GET /api/v1/risk/zones
func (h *Handler) Zones(c *gin.Context) {
	zones, err := h.client.Zones(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	if zones == nil {
		zones = []geo.RiskZone{}
	}
	httpkit.OK(c, ZonesResponse{Zones: zones})
}
