package postback

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/api"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/mapping"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/pipeline"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/scheduler"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

// PostbackHandler ingests server-to-server completion callbacks from offer
// partners. The endpoint always answers 200 with success-shaped JSON:
// partner retry behavior on visible failure is untrusted, so internal
// failures are logged and re-enqueued instead of surfaced.
type PostbackHandler struct {
	Reconciler *pipeline.Reconciler
	Retries    scheduler.RetryScheduler
	Logger     *slog.Logger
}

// NewPostbackHandler creates a new PostbackHandler.
func NewPostbackHandler(reconciler *pipeline.Reconciler, retries scheduler.RetryScheduler, logger *slog.Logger) *PostbackHandler {
	return &PostbackHandler{Reconciler: reconciler, Retries: retries, Logger: logger}
}

// postbackBody is the loosely-typed JSON body partners send. Everything is
// optional; most networks also (or only) use query parameters.
type postbackBody struct {
	Status        string   `json:"status"`
	Amount        *float64 `json:"amount"`
	Payout        *float64 `json:"payout"`
	TransactionId string   `json:"transactionId"`
	ConversionId  string   `json:"conversionId"`
}

// HandlePostback processes one postback, from either a POST body, query
// parameters, or a mix of both.
func (h *PostbackHandler) HandlePostback(w http.ResponseWriter, r *http.Request) {
	report, err := parseReport(r)
	if err != nil {
		h.respond(w, false, err.Error())
		return
	}

	result, err := h.Reconciler.Reconcile(r.Context(), report)
	if err == nil {
		h.respond(w, true, fmt.Sprintf("earning %s is %s", result.EarningId, result.EarningStatus))
		return
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		h.Logger.WarnContext(r.Context(), "postback for unknown click", "click_token", report.ClickToken)
		h.respond(w, false, "unknown click token")
	case errors.Is(err, pipeline.ErrExpiredClick):
		h.Logger.InfoContext(r.Context(), "postback after click expiry", "click_token", report.ClickToken)
		h.respond(w, false, "click expired")
	case errors.Is(err, pipeline.ErrAlreadyFinalized):
		h.respond(w, false, "click already finalized")
	case errors.Is(err, pipeline.ErrInvalidStatusTransition):
		h.Logger.WarnContext(r.Context(), "postback requested invalid transition", "click_token", report.ClickToken, "error", err)
		h.respond(w, false, "conflicting earning state")
	default:
		// Internal failure: acknowledge to the partner, retry ourselves.
		h.Logger.ErrorContext(r.Context(), "postback reconciliation failed", "click_token", report.ClickToken, "error", err)
		if h.Retries != nil {
			if retryErr := h.Retries.ScheduleReconcileRetry(r.Context(), report); retryErr != nil {
				h.Logger.ErrorContext(r.Context(), "failed to enqueue reconcile retry", "click_token", report.ClickToken, "error", retryErr)
			}
		}
		h.respond(w, true, "received")
	}
}

func (h *PostbackHandler) respond(w http.ResponseWriter, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(api.PostbackResponse{Success: success, Message: message}); err != nil {
		h.Logger.Error("failed to write postback response", "error", err)
	}
}

// parseReport merges the query string and JSON body into a PostbackReport.
// Query parameters win for the click token; the body wins for everything
// else when both are present.
func parseReport(r *http.Request) (pipeline.PostbackReport, error) {
	query := r.URL.Query()

	report := pipeline.PostbackReport{
		ClickToken:   query.Get("click_id"),
		Status:       query.Get("status"),
		ConversionId: query.Get("conversion_id"),
	}
	if report.ClickToken == "" {
		report.ClickToken = query.Get("click_token")
	}
	if report.ConversionId == "" {
		report.ConversionId = query.Get("transaction_id")
	}
	if raw := query.Get("amount"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			cents := mapping.ToCents(amount)
			report.Amount = &cents
		}
	}

	body, err := io.ReadAll(r.Body)
	if err == nil && len(body) > 0 {
		report.RawPayload = string(body)

		var parsed postbackBody
		if err := json.Unmarshal(body, &parsed); err == nil {
			if parsed.Status != "" {
				report.Status = parsed.Status
			}
			if parsed.ConversionId != "" {
				report.ConversionId = parsed.ConversionId
			} else if parsed.TransactionId != "" {
				report.ConversionId = parsed.TransactionId
			}
			amount := parsed.Amount
			if amount == nil {
				amount = parsed.Payout
			}
			if amount != nil {
				cents := mapping.ToCents(*amount)
				report.Amount = &cents
			}
		}
	}
	if report.RawPayload == "" {
		report.RawPayload = query.Encode()
	}

	if report.ClickToken == "" {
		return report, errors.New("missing click_id")
	}

	return report, nil
}
