package places

import (
	"net/http"

	"safenav_gateway/internal/geo"
	"safenav_gateway/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// SuggestRequest represents the query parameters from the frontend.
type SuggestRequest struct {
	Query string `form:"query" binding:"required"`
}

// SuggestResponse is the candidate list returned to the frontend.
// An empty list means no matches, never a failure.
type SuggestResponse struct {
	Places []geo.PlaceCandidate `json:"places"`
}

// Handler exposes the place suggestion endpoint.
type Handler struct {
	resolver *Resolver
}

func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// Suggest handles GET /api/v1/places/suggest?query=...
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query is required", nil)
		return
	}

	places := h.resolver.Resolve(c.Request.Context(), req.Query)
	if places == nil {
		places = []geo.PlaceCandidate{}
	}

	httpkit.OK(c, SuggestResponse{Places: places})
}
