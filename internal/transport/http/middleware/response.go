package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/employee-api/internal/domain"
)

// writeEnvelope writes a response envelope with the correct Content-Type.
// Admission stages and the exception normalizer use it so rejected requests
// look exactly like every other response on the wire.
func writeEnvelope(w http.ResponseWriter, status int, resp *domain.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
