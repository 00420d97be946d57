package httpkit

import (
	"encoding/json"
	"net/http"

	"safenav_gateway/platform/apperr"
)

// ReadDetail extracts the upstream's {"detail": ...} error message, if any.
func ReadDetail(resp *http.Response) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}

// UpstreamError builds an Unavailable error carrying the upstream detail
// verbatim when present.
func UpstreamError(message, detail string) *apperr.Error {
	err := apperr.Unavailable(message)
	if detail != "" {
		err = err.WithDetails(detail)
		err.Message = detail
	}
	return err
}
