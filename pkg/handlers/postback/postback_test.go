package postback_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/api"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/postback"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/pipeline"
	schedmocks "github.com/Romannaveed423/smbhav-backend-sub000/pkg/scheduler/mocks"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage/mocks"
)

type fixture struct {
	clicks      *mocks.ClickStore
	earnings    *mocks.EarningStore
	offers      *mocks.OfferStore
	settlements *mocks.SettlementStore
	referrals   *mocks.ReferralStore
	retries     *schedmocks.RetryScheduler
	handler     *postback.PostbackHandler
}

func newFixture() *fixture {
	f := &fixture{
		clicks:      new(mocks.ClickStore),
		earnings:    new(mocks.EarningStore),
		offers:      new(mocks.OfferStore),
		settlements: new(mocks.SettlementStore),
		referrals:   new(mocks.ReferralStore),
		retries:     new(schedmocks.RetryScheduler),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cascade := pipeline.NewCascade(f.referrals, pipeline.DefaultCommissionRate, logger)
	engine := pipeline.NewEngine(f.settlements, new(mocks.UserStore), cascade, nil, logger)
	reconciler := pipeline.NewReconciler(f.clicks, f.earnings, f.offers, engine, logger)
	f.handler = postback.NewPostbackHandler(reconciler, f.retries, logger)
	return f
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) api.PostbackResponse {
	t.Helper()
	var resp api.PostbackResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHandlePostback(t *testing.T) {
	pendingClick := func() *models.Click {
		now := time.Now()
		return &models.Click{
			Token:     "tok123",
			UserId:    "user1",
			ProductId: "prod1",
			Status:    models.ClickPending,
			ExpiresAt: now.Add(time.Hour),
		}
	}

	t.Run("Success Via Query Params", func(t *testing.T) {
		f := newFixture()

		f.clicks.On("GetClickByToken", mock.Anything, "tok123").Return(pendingClick(), nil).Once()
		f.earnings.On("GetEarningByConversionID", mock.Anything, "conv-1").Return(nil, storage.ErrNotFound).Once()
		f.earnings.On("GetEarningByClickToken", mock.Anything, "tok123").Return(nil, storage.ErrNotFound).Once()
		f.earnings.On("CreateEarning", mock.Anything, mock.MatchedBy(func(e *models.Earning) bool {
			// 25.00 on the wire is 2500 cents internally.
			return e.Amount == 2500
		})).Return(nil).Once()
		f.settlements.On("SettleEarning", mock.Anything, mock.Anything).Return(true, nil).Once()
		f.referrals.On("GetReferralLinkByReferredUser", mock.Anything, "user1").Return(nil, storage.ErrNotFound).Once()
		f.clicks.On("TransitionClick", mock.Anything, "tok123", models.ClickPending, models.ClickConverted, "conv-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/postback?click_id=tok123&status=success&amount=25.00&conversion_id=conv-1", nil)
		rr := httptest.NewRecorder()

		f.handler.HandlePostback(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.True(t, resp.Success)
		f.clicks.AssertExpectations(t)
		f.earnings.AssertExpectations(t)
	})

	t.Run("Success Via JSON Body", func(t *testing.T) {
		f := newFixture()

		f.clicks.On("GetClickByToken", mock.Anything, "tok123").Return(pendingClick(), nil).Once()
		f.earnings.On("GetEarningByConversionID", mock.Anything, "txn-9").Return(nil, storage.ErrNotFound).Once()
		f.earnings.On("GetEarningByClickToken", mock.Anything, "tok123").Return(nil, storage.ErrNotFound).Once()
		f.earnings.On("CreateEarning", mock.Anything, mock.MatchedBy(func(e *models.Earning) bool {
			return e.Amount == 1050 && e.ConversionId == "txn-9" && e.RawPayload != ""
		})).Return(nil).Once()
		f.settlements.On("SettleEarning", mock.Anything, mock.Anything).Return(true, nil).Once()
		f.referrals.On("GetReferralLinkByReferredUser", mock.Anything, "user1").Return(nil, storage.ErrNotFound).Once()
		f.clicks.On("TransitionClick", mock.Anything, "tok123", models.ClickPending, models.ClickConverted, "txn-9").Return(nil).Once()

		body := `{"status":"completed","amount":10.50,"transactionId":"txn-9"}`
		req := httptest.NewRequest(http.MethodPost, "/postback?click_id=tok123", strings.NewReader(body))
		rr := httptest.NewRecorder()

		f.handler.HandlePostback(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, decodeResponse(t, rr).Success)
		f.earnings.AssertExpectations(t)
	})

	t.Run("Missing Click Id", func(t *testing.T) {
		f := newFixture()

		req := httptest.NewRequest(http.MethodGet, "/postback?status=success", nil)
		rr := httptest.NewRecorder()

		f.handler.HandlePostback(rr, req)

		// Still HTTP 200; the body carries the failure.
		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.False(t, resp.Success)
	})

	t.Run("Unknown Click Token", func(t *testing.T) {
		f := newFixture()

		f.clicks.On("GetClickByToken", mock.Anything, "ghost").Return(nil, storage.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/postback?click_id=ghost&status=success", nil)
		rr := httptest.NewRecorder()

		f.handler.HandlePostback(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "unknown click token")
	})

	t.Run("Expired Click", func(t *testing.T) {
		f := newFixture()

		click := pendingClick()
		click.ExpiresAt = time.Now().Add(-time.Minute)
		f.clicks.On("GetClickByToken", mock.Anything, "tok123").Return(click, nil).Once()
		f.clicks.On("TransitionClick", mock.Anything, "tok123", models.ClickPending, models.ClickExpired, "").Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/postback?click_id=tok123&status=success", nil)
		rr := httptest.NewRecorder()

		f.handler.HandlePostback(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "expired")
	})

	t.Run("Internal Failure Is Acknowledged And Retried", func(t *testing.T) {
		f := newFixture()

		f.clicks.On("GetClickByToken", mock.Anything, "tok123").Return(nil, errors.New("dynamo down")).Once()
		f.retries.On("ScheduleReconcileRetry", mock.Anything, mock.MatchedBy(func(r pipeline.PostbackReport) bool {
			return r.ClickToken == "tok123"
		})).Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/postback?click_id=tok123&status=success", nil)
		rr := httptest.NewRecorder()

		f.handler.HandlePostback(rr, req)

		// The partner sees success; the report went to the retry queue.
		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.True(t, resp.Success)
		assert.Equal(t, "received", resp.Message)
		f.retries.AssertExpectations(t)
	})

	t.Run("Duplicate Resend Reports Existing Earning", func(t *testing.T) {
		f := newFixture()

		creditedAt := time.Now()
		existing := &models.Earning{
			Id:           uuid.New().String(),
			UserId:       "user1",
			ClickToken:   "tok123",
			ConversionId: "conv-1",
			Amount:       2500,
			Status:       models.EarningCompleted,
			CreditedAt:   &creditedAt,
		}
		f.clicks.On("GetClickByToken", mock.Anything, "tok123").Return(pendingClick(), nil).Once()
		f.earnings.On("GetEarningByConversionID", mock.Anything, "conv-1").Return(existing, nil).Once()
		f.clicks.On("TransitionClick", mock.Anything, "tok123", models.ClickPending, models.ClickConverted, "conv-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/postback?click_id=tok123&status=success&conversion_id=conv-1", nil)
		rr := httptest.NewRecorder()

		f.handler.HandlePostback(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Message, existing.Id)
		f.settlements.AssertNotCalled(t, "SettleEarning", mock.Anything, mock.Anything)
	})
}
