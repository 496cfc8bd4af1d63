package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/api"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/mapping"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/pipeline"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

// AdminHandler holds the dependencies for the manual-review endpoints.
type AdminHandler struct {
	Authority *pipeline.Authority
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authority *pipeline.Authority) *AdminHandler {
	return &AdminHandler{Authority: authority}
}

// ApproveEarning manually approves an earning, optionally overriding its
// amount, and settles it if it has not been credited yet.
func (h *AdminHandler) ApproveEarning(w http.ResponseWriter, r *http.Request, earningId openapi_types.UUID) {
	adminID := r.Header.Get("X-Admin-Id")
	if adminID == "" {
		http.Error(w, "Missing X-Admin-Id header", http.StatusBadRequest)
		return
	}

	var req api.ApproveEarningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	var overrideAmount *int64
	if req.Amount != nil {
		cents := mapping.ToCents(*req.Amount)
		overrideAmount = &cents
	}

	earning, err := h.Authority.Approve(r.Context(), earningId.String(), adminID, overrideAmount, req.Notes)
	if err != nil {
		writeAdminError(w, err)
		return
	}

	writeEarning(w, earning)
}

// RejectEarning cancels an earning with a mandatory reason. Credits already
// applied are not reversed.
func (h *AdminHandler) RejectEarning(w http.ResponseWriter, r *http.Request, earningId openapi_types.UUID) {
	adminID := r.Header.Get("X-Admin-Id")
	if adminID == "" {
		http.Error(w, "Missing X-Admin-Id header", http.StatusBadRequest)
		return
	}

	var req api.RejectEarningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	earning, err := h.Authority.Reject(r.Context(), earningId.String(), adminID, req.Reason)
	if err != nil {
		writeAdminError(w, err)
		return
	}

	writeEarning(w, earning)
}

// AdjustEarning re-prices an earning. For credited earnings only the delta
// reaches the wallet.
func (h *AdminHandler) AdjustEarning(w http.ResponseWriter, r *http.Request, earningId openapi_types.UUID) {
	adminID := r.Header.Get("X-Admin-Id")
	if adminID == "" {
		http.Error(w, "Missing X-Admin-Id header", http.StatusBadRequest)
		return
	}

	var req api.AdjustEarningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	earning, err := h.Authority.AdjustAmount(r.Context(), earningId.String(), adminID, mapping.ToCents(req.Amount), req.Reason)
	if err != nil {
		writeAdminError(w, err)
		return
	}

	writeEarning(w, earning)
}

func writeEarning(w http.ResponseWriter, earning *models.Earning) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiEarning(earning)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Earning not found", http.StatusNotFound)
	case errors.Is(err, pipeline.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, pipeline.ErrAlreadyProcessed),
		errors.Is(err, pipeline.ErrInvalidStatusTransition),
		errors.Is(err, storage.ErrStaleAmount):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("Failed to process earning: %v", err), http.StatusInternalServerError)
	}
}
