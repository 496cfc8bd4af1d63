package wallets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/api"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/mapping"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

// WalletsHandler holds the dependencies for wallet read endpoints.
type WalletsHandler struct {
	Users    storage.UserStore
	Earnings storage.EarningReader
}

// NewWalletsHandler creates a new WalletsHandler.
func NewWalletsHandler(users storage.UserStore, earnings storage.EarningReader) *WalletsHandler {
	return &WalletsHandler{Users: users, Earnings: earnings}
}

// GetWalletByUserId returns the wallet counters for a user.
func (h *WalletsHandler) GetWalletByUserId(w http.ResponseWriter, r *http.Request, userId string) {
	user, err := h.Users.GetUser(r.Context(), userId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get wallet: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiWallet(user)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListEarningsByUserId returns every earning owned by a user, newest first
// as stored.
func (h *WalletsHandler) ListEarningsByUserId(w http.ResponseWriter, r *http.Request, userId string) {
	earnings, err := h.Earnings.ListEarningsByUserID(r.Context(), userId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list earnings: %v", err), http.StatusInternalServerError)
		return
	}

	response := make([]api.Earning, 0, len(earnings))
	for i := range earnings {
		response = append(response, *mapping.ToApiEarning(&earnings[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
