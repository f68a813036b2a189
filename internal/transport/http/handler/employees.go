package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/employee-api/internal/application/employee"
	"github.com/employee-api/internal/domain"
	"github.com/employee-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeHandler handles employee CRUD endpoints. Every method returns an
// error only for infrastructure faults; the exception normalizer in the
// transport layer converts those. Business failures are written here as
// 500 + envelope, mirroring the upstream status mapping.
type EmployeeHandler struct {
	svc employee.Service
	log *zap.Logger
}

func NewEmployeeHandler(svc employee.Service, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, log: log}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.svc.List(r.Context())
	if err != nil {
		return err
	}
	if !resp.IsSuccess {
		h.log.Error("error fetching employees", zap.String("message", resp.Message))
	}
	writeResponse(w, resp)
	return nil
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) error {
	employeeID, ok := parseID(w, r)
	if !ok {
		return nil
	}
	resp, err := h.svc.Get(r.Context(), employeeID)
	if err != nil {
		return err
	}
	if !resp.IsSuccess {
		h.log.Error("error fetching employee by id",
			zap.String("id", employeeID.String()),
			zap.String("message", resp.Message))
	}
	writeResponse(w, resp)
	return nil
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req *domain.AddEmployeeRequest
	if !decodeBody(w, r, &req) {
		return nil
	}
	if req != nil && !validateBody(w, req) {
		return nil
	}
	resp, err := h.svc.Create(r.Context(), req)
	if err != nil {
		return err
	}
	if !resp.IsSuccess {
		h.log.Error("error creating employee", zap.String("message", resp.Message))
	}
	writeResponse(w, resp)
	return nil
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) error {
	employeeID, ok := parseID(w, r)
	if !ok {
		return nil
	}
	var req *domain.UpdateEmployeeRequest
	if !decodeBody(w, r, &req) {
		return nil
	}
	if req != nil && !validateBody(w, req) {
		return nil
	}
	resp, err := h.svc.Update(r.Context(), employeeID, req)
	if err != nil {
		return err
	}
	if !resp.IsSuccess {
		h.log.Error("error updating employee",
			zap.String("id", employeeID.String()),
			zap.String("message", resp.Message))
	}
	writeResponse(w, resp)
	return nil
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	employeeID, ok := parseID(w, r)
	if !ok {
		return nil
	}
	resp, err := h.svc.Delete(r.Context(), employeeID)
	if err != nil {
		return err
	}
	if !resp.IsSuccess {
		h.log.Error("error deleting employee",
			zap.String("id", employeeID.String()),
			zap.String("message", resp.Message))
	}
	writeResponse(w, resp)
	return nil
}

// parseID reads the {id} route parameter. An unparseable id is a binding
// failure: 400 with no body. The zero UUID parses fine and is left for the
// service to judge.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return uuid.Nil, false
	}
	return employeeID, true
}

// decodeBody decodes a JSON payload. Malformed JSON is a binding failure:
// 400 with no body. An empty body decodes to nil and is left for the service
// to judge.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	return true
}

// validateBody enforces presence validation on a decoded payload. A payload
// missing required fields is a binding failure: 400 with no body.
func validateBody(w http.ResponseWriter, v interface{}) bool {
	if err := validate.Struct(v); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	return true
}
