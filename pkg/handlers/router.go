package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/admin"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/clicks"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/postback"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/wallets"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/middleware"
)

// ApiHandler bundles the per-concern handlers behind one router.
type ApiHandler struct {
	Clicks   *clicks.ClicksHandler
	Postback *postback.PostbackHandler
	Admin    *admin.AdminHandler
	Wallets  *wallets.WalletsHandler
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(c *clicks.ClicksHandler, p *postback.PostbackHandler, a *admin.AdminHandler, w *wallets.WalletsHandler) *ApiHandler {
	return &ApiHandler{Clicks: c, Postback: p, Admin: a, Wallets: w}
}

// NewRouter mounts every HTTP endpoint onto a chi router.
func NewRouter(h *ApiHandler, logger *slog.Logger) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.NewStructuredLogger(logger))

	router.Post("/offers/{productId}/click", func(w http.ResponseWriter, r *http.Request) {
		h.Clicks.DispatchClick(w, r, chi.URLParam(r, "productId"))
	})

	// Partners call the postback endpoint with either verb.
	router.Get("/postback", h.Postback.HandlePostback)
	router.Post("/postback", h.Postback.HandlePostback)

	router.Route("/admin/earnings/{earningId}", func(r chi.Router) {
		r.Post("/approve", withEarningId(h.Admin.ApproveEarning))
		r.Post("/reject", withEarningId(h.Admin.RejectEarning))
		r.Post("/adjust", withEarningId(h.Admin.AdjustEarning))
	})

	router.Get("/users/{userId}/wallet", func(w http.ResponseWriter, r *http.Request) {
		h.Wallets.GetWalletByUserId(w, r, chi.URLParam(r, "userId"))
	})
	router.Get("/users/{userId}/earnings", func(w http.ResponseWriter, r *http.Request) {
		h.Wallets.ListEarningsByUserId(w, r, chi.URLParam(r, "userId"))
	})

	return router
}

// withEarningId parses the {earningId} route parameter as a UUID before
// delegating.
func withEarningId(next func(w http.ResponseWriter, r *http.Request, earningId openapi_types.UUID)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "earningId")
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid earning id %q", raw), http.StatusBadRequest)
			return
		}
		next(w, r, openapi_types.UUID(id))
	}
}
