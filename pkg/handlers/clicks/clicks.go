package clicks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/api"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/mapping"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/pipeline"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

// ClicksHandler holds the dependencies for click-dispatch handlers.
type ClicksHandler struct {
	Issuer *pipeline.Issuer
}

// NewClicksHandler creates a new ClicksHandler.
func NewClicksHandler(issuer *pipeline.Issuer) *ClicksHandler {
	return &ClicksHandler{Issuer: issuer}
}

// DispatchClick issues a trackable click for a user/offer pair. The caller's
// identity arrives on X-User-Id, stamped by the auth layer in front of this
// service.
func (h *ClicksHandler) DispatchClick(w http.ResponseWriter, r *http.Request, productId string) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		http.Error(w, "Missing X-User-Id header", http.StatusBadRequest)
		return
	}

	var req api.DispatchClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	click, err := h.Issuer.IssueClick(r.Context(), userID, productId, req.TaskUrl, req.OfferId)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Offer not found", http.StatusNotFound)
		case errors.Is(err, pipeline.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, fmt.Sprintf("Failed to issue click: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiDispatchClick(click)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
