package clicks_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/api"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/handlers/clicks"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/pipeline"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage/mocks"
)

func newIssuer(clickStore *mocks.ClickStore, offerStore *mocks.OfferStore) *pipeline.Issuer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return pipeline.NewIssuer(clickStore, offerStore, "https://api.example.com", time.Hour, logger)
}

func TestDispatchClick(t *testing.T) {
	offer := &models.Offer{Id: "prod1", PayoutAmount: 10000, TaskURL: "https://partner.example.com/task"}

	t.Run("Success", func(t *testing.T) {
		clickStore := new(mocks.ClickStore)
		offerStore := new(mocks.OfferStore)
		offerStore.On("GetOffer", mock.Anything, "prod1").Return(offer, nil).Once()
		clickStore.On("CreateClick", mock.Anything, mock.Anything).Return(nil).Once()

		h := clicks.NewClicksHandler(newIssuer(clickStore, offerStore))

		req := httptest.NewRequest(http.MethodPost, "/offers/prod1/click", nil)
		req.Header.Set("X-User-Id", "user1")
		rr := httptest.NewRecorder()

		h.DispatchClick(rr, req, "prod1")

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp api.DispatchClickResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ClickToken)
		assert.Contains(t, resp.RedirectUrl, "click_id="+resp.ClickToken)
		clickStore.AssertExpectations(t)
		offerStore.AssertExpectations(t)
	})

	t.Run("Missing User Header", func(t *testing.T) {
		h := clicks.NewClicksHandler(newIssuer(new(mocks.ClickStore), new(mocks.OfferStore)))

		req := httptest.NewRequest(http.MethodPost, "/offers/prod1/click", nil)
		rr := httptest.NewRecorder()

		h.DispatchClick(rr, req, "prod1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unknown Offer", func(t *testing.T) {
		clickStore := new(mocks.ClickStore)
		offerStore := new(mocks.OfferStore)
		offerStore.On("GetOffer", mock.Anything, "missing").Return(nil, storage.ErrNotFound).Once()

		h := clicks.NewClicksHandler(newIssuer(clickStore, offerStore))

		req := httptest.NewRequest(http.MethodPost, "/offers/missing/click", nil)
		req.Header.Set("X-User-Id", "user1")
		rr := httptest.NewRecorder()

		h.DispatchClick(rr, req, "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		offerStore.AssertExpectations(t)
	})

	t.Run("Explicit Task URL In Body", func(t *testing.T) {
		clickStore := new(mocks.ClickStore)
		offerStore := new(mocks.OfferStore)
		offerStore.On("GetOffer", mock.Anything, "prod1").Return(offer, nil).Once()
		clickStore.On("CreateClick", mock.Anything, mock.MatchedBy(func(c *models.Click) bool {
			return c.TaskURL == "https://other.example.com/survey"
		})).Return(nil).Once()

		h := clicks.NewClicksHandler(newIssuer(clickStore, offerStore))

		body, _ := json.Marshal(api.DispatchClickRequest{TaskUrl: "https://other.example.com/survey"})
		req := httptest.NewRequest(http.MethodPost, "/offers/prod1/click", bytes.NewReader(body))
		req.Header.Set("X-User-Id", "user1")
		rr := httptest.NewRecorder()

		h.DispatchClick(rr, req, "prod1")

		assert.Equal(t, http.StatusCreated, rr.Code)
		clickStore.AssertExpectations(t)
	})
}
