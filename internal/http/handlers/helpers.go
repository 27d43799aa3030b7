package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"wulf-order-services/internal/admin"
	"wulf-order-services/internal/checkout"
	"wulf-order-services/internal/kitchen"
	"wulf-order-services/internal/menu"
	"wulf-order-services/internal/middleware"
	"wulf-order-services/internal/monitor"
	"wulf-order-services/internal/session"
	"wulf-order-services/internal/tablemap"
	"wulf-order-services/internal/utils"
	"wulf-order-services/internal/wizard"
	"wulf-order-services/pkg/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	errMissingParam    = errors.New("missing param")
	errProductNotFound = errors.New("product not found")
)

func readPathString(r *http.Request, key string) string {
	return strings.TrimSpace(chi.URLParam(r, key))
}

func readPathInt64(r *http.Request, key string) (int64, error) {
	value := readPathString(r, key)
	if value == "" {
		return 0, errMissingParam
	}
	var out int64
	_, err := fmt.Sscan(value, &out)
	return out, err
}

func readQuery(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// client resolves the caller's state; on failure the response is written.
func (h *Handler) client(w http.ResponseWriter, r *http.Request) (*session.Client, bool) {
	clientID, _ := middleware.GetClientID(r.Context())
	c, err := h.Sessions.Get(r.Context(), clientID)
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return c, true
}

// respond runs fn against the caller's state and writes its result.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, fn func(c *session.Client) (any, error)) {
	c, ok := h.client(w, r)
	if !ok {
		return
	}
	data, err := fn(c)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, data)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validationError
	if errors.As(err, &verr) {
		response.ErrorDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", verr.message, verr.details)
		return
	}

	var maxErr *tablemap.MaxSelectionError
	if errors.As(err, &maxErr) {
		response.Error(w, http.StatusConflict, "MAX_SELECTION", maxErr.Error())
		return
	}

	var blocked *wizard.BlockedError
	if errors.As(err, &blocked) {
		response.ErrorDetails(w, http.StatusConflict, "STEP_BLOCKED", blocked.Reason, map[string]any{"step": blocked.To})
		return
	}

	switch {
	case errors.Is(err, checkout.ErrNameRequired):
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", checkout.NameRequiredMessage)
	case errors.Is(err, checkout.ErrPaymentMethodRequired):
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", checkout.PaymentMethodRequiredMessage)
	case errors.Is(err, checkout.ErrEmptyCart):
		response.Error(w, http.StatusBadRequest, "EMPTY_CART", "Keranjang belanja kosong")
	case errors.Is(err, checkout.ErrPaymentInProgress):
		response.Error(w, http.StatusConflict, "PAYMENT_IN_PROGRESS", err.Error())
	case errors.Is(err, menu.ErrCategoryNotFound):
		response.Error(w, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Kategori tidak ditemukan")
	case errors.Is(err, tablemap.ErrTableUnavailable):
		response.Error(w, http.StatusConflict, "TABLE_UNAVAILABLE", err.Error())
	case errors.Is(err, errProductNotFound),
		errors.Is(err, checkout.ErrOrderNotFound),
		errors.Is(err, kitchen.ErrOrderNotFound),
		errors.Is(err, kitchen.ErrItemNotFound),
		errors.Is(err, wizard.ErrTableNotFound),
		errors.Is(err, wizard.ErrMenuItemNotFound),
		errors.Is(err, wizard.ErrNoConfirmedOrder),
		errors.Is(err, admin.ErrUnknownTab),
		errors.Is(err, admin.ErrEntityNotFound),
		errors.Is(err, admin.ErrUnknownCategory):
		response.Error(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, session.ErrClientIDRequired),
		errors.Is(err, errMissingParam),
		errors.Is(err, wizard.ErrInvalidDate),
		errors.Is(err, wizard.ErrDateInPast),
		errors.Is(err, wizard.ErrInvalidTimeSlot),
		errors.Is(err, wizard.ErrInvalidPartySize),
		errors.Is(err, wizard.ErrMenuItemUnavailable),
		errors.Is(err, wizard.ErrUnknownPaymentMethod),
		errors.Is(err, wizard.ErrUnknownStep),
		errors.Is(err, wizard.ErrNoNextStep),
		errors.Is(err, wizard.ErrNoPrevStep),
		errors.Is(err, tablemap.ErrUnknownViewMode),
		errors.Is(err, kitchen.ErrInvalidStatus),
		errors.Is(err, kitchen.ErrStatusBackward),
		errors.Is(err, kitchen.ErrInvalidFilter),
		errors.Is(err, monitor.ErrInvalidFilter),
		errors.Is(err, admin.ErrEmptyCategory),
		errors.Is(err, admin.ErrDuplicateCategory),
		errors.Is(err, admin.ErrAddNotSupported),
		errors.Is(err, admin.ErrInvalidEntity),
		errors.Is(err, utils.ErrTrackingTokenRequired),
		errors.Is(err, utils.ErrInvalidTrackingToken):
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
