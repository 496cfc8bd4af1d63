package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/admin"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/clicks"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/postback"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/wallets"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/pipeline"
	schedmocks "github.com/Romannaveed423/smbhav-backend-sub000/pkg/scheduler/mocks"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage/mocks"
)

func newTestRouter(users *mocks.UserStore) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	clickStore := new(mocks.ClickStore)
	earnings := new(mocks.EarningStore)
	offers := new(mocks.OfferStore)
	settlements := new(mocks.SettlementStore)
	referrals := new(mocks.ReferralStore)

	cascade := pipeline.NewCascade(referrals, pipeline.DefaultCommissionRate, logger)
	engine := pipeline.NewEngine(settlements, users, cascade, nil, logger)
	issuer := pipeline.NewIssuer(clickStore, offers, "https://api.example.com", time.Hour, logger)
	reconciler := pipeline.NewReconciler(clickStore, earnings, offers, engine, logger)
	authority := pipeline.NewAuthority(earnings, settlements, engine, logger)

	h := handlers.NewApiHandler(
		clicks.NewClicksHandler(issuer),
		postback.NewPostbackHandler(reconciler, new(schedmocks.RetryScheduler), logger),
		admin.NewAdminHandler(authority),
		wallets.NewWalletsHandler(users, earnings),
	)
	return handlers.NewRouter(h, logger)
}

func TestRouter(t *testing.T) {
	t.Run("Invalid Earning Id Is Rejected", func(t *testing.T) {
		router := newTestRouter(new(mocks.UserStore))

		req := httptest.NewRequest(http.MethodPost, "/admin/earnings/not-a-uuid/approve", nil)
		req.Header.Set("X-Admin-Id", "admin1")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Wallet Route Dispatches", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetUser", mock.Anything, "user1").Return(&models.User{UserId: "user1"}, nil).Once()

		router := newTestRouter(users)

		req := httptest.NewRequest(http.MethodGet, "/users/user1/wallet", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		users.AssertExpectations(t)
	})

	t.Run("Unknown Route", func(t *testing.T) {
		router := newTestRouter(new(mocks.UserStore))

		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
