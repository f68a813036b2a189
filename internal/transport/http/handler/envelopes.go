package handler

import (
	"encoding/json"
	"net/http"

	"github.com/employee-api/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeResponse maps a service envelope onto the wire: 200 when the operation
// succeeded, 500 otherwise. Business failures keep the envelope body either
// way — clients branch on isSuccess, not on the status code.
func writeResponse(w http.ResponseWriter, resp *domain.Response) {
	if resp.IsSuccess {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}
