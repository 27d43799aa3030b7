package handlers

import (
	"net/http"
	"strings"

	"wulf-order-services/internal/checkout"
	"wulf-order-services/internal/monitor"
	"wulf-order-services/internal/session"
	"wulf-order-services/internal/utils"
	"wulf-order-services/pkg/response"
)

type checkoutFormRequest struct {
	Name  string `json:"name" validate:"max=120"`
	Phone string `json:"phone" validate:"max=32"`
	Notes string `json:"notes" validate:"max=500"`
}

func (b checkoutFormRequest) form() checkout.Form {
	return checkout.Form{Name: b.Name, Phone: b.Phone, Notes: b.Notes}
}

type paymentRequest struct {
	Method string `json:"method" validate:"omitempty,oneof=qris other"`
}

func (h *Handler) PublicCheckoutGet(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Checkout.View(r.Context())
	})
}

func (h *Handler) PublicCheckoutSaveDraft(w http.ResponseWriter, r *http.Request) {
	var body checkoutFormRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Checkout.SaveDraft(r.Context(), body.form())
	})
}

func (h *Handler) PublicCheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	var body checkoutFormRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Checkout.Submit(r.Context(), body.form())
	})
}

func (h *Handler) PublicPaymentGet(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Checkout.Order(r.Context())
	})
}

// PublicPaymentConfirm blocks for the configured processing delay.
func (h *Handler) PublicPaymentConfirm(w http.ResponseWriter, r *http.Request) {
	var body paymentRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, ok := h.client(w, r)
	if !ok {
		return
	}
	result, err := c.Checkout.ConfirmPayment(r.Context(), checkout.PaymentMethod(body.Method))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.SuccessMessage(w, http.StatusOK, result, result.Message)
}

// trackingToken reads the token from the query string or a bearer header.
func trackingToken(r *http.Request) string {
	if token := readQuery(r, "token"); token != "" {
		return token
	}
	return utils.ParseBearerToken(strings.TrimSpace(r.Header.Get("Authorization")))
}

// PublicTracking shows the paid order named by the token, or the sample order
// when no token is given.
func (h *Handler) PublicTracking(w http.ResponseWriter, r *http.Request) {
	token := trackingToken(r)
	if token == "" {
		response.Success(w, monitor.Track(monitor.SampleTrackedOrder(h.now())))
		return
	}
	claims, err := utils.VerifyOrderTrackingToken(h.Config.TrackingTokenSecret, token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, monitor.Track(monitor.TrackedOrderFromClaims(claims)))
}

func (h *Handler) PublicTrackingReceipt(w http.ResponseWriter, r *http.Request) {
	claims, err := utils.VerifyOrderTrackingToken(h.Config.TrackingTokenSecret, trackingToken(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order := monitor.TrackedOrderFromClaims(claims)
	data := receiptData{
		Title:       "Wulf Coffee & Eatery",
		OrderNumber: order.ID,
		Customer:    order.CustomerName,
		PlacedAt:    order.OrderTime.In(h.location()).Format("02 Jan 2006 15:04"),
		Total:       order.TotalPrice,
		Payment:     "Paid",
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, receiptLine{Name: item.Name, Quantity: item.Quantity, Subtotal: item.Price * int64(item.Quantity)})
	}
	h.writeReceipt(w, r, data)
}
