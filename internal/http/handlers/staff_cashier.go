package handlers

import (
	"net/http"
	"strings"

	"wulf-order-services/internal/session"
	"wulf-order-services/internal/wizard"
	"wulf-order-services/pkg/response"
)

type cashierCustomerRequest struct {
	CustomerName string `json:"customerName" validate:"max=120"`
}

type paymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// wizardRoutes are the floor and menu endpoints mounted under each wizard.
type wizardRoutes struct {
	Tables      http.HandlerFunc
	ToggleTable http.HandlerFunc
	Viewport    http.HandlerFunc
	Menu        http.HandlerFunc
	AddItem     http.HandlerFunc
	SetQuantity http.HandlerFunc
}

func cashierPlanner(c *session.Client) floorPlanner { return c.Cashier }

func (h *Handler) CashierRoutes() wizardRoutes {
	return wizardRoutes{
		Tables:      h.floorGet(cashierPlanner),
		ToggleTable: h.floorToggle(cashierPlanner),
		Viewport:    h.floorViewport(cashierPlanner),
		Menu:        h.menuGet(cashierPlanner),
		AddItem:     h.menuAdd(cashierPlanner),
		SetQuantity: h.menuSetQuantity(cashierPlanner),
	}
}

func (h *Handler) CashierGet(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Cashier.State(), nil
	})
}

func (h *Handler) CashierSetCustomer(w http.ResponseWriter, r *http.Request) {
	var body cashierCustomerRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Cashier.SetCustomerName(body.CustomerName), nil
	})
}

func (h *Handler) CashierSetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var body paymentMethodRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Cashier.SetPaymentMethod(body.PaymentMethod)
	})
}

func (h *Handler) CashierNext(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Cashier.Next()
	})
}

func (h *Handler) CashierBack(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Cashier.Back()
	})
}

func (h *Handler) CashierGoTo(w http.ResponseWriter, r *http.Request) {
	var body stepRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Cashier.GoTo(body.Step)
	})
}

func (h *Handler) CashierConfirm(w http.ResponseWriter, r *http.Request) {
	c, ok := h.client(w, r)
	if !ok {
		return
	}
	receipt, err := c.Cashier.Confirm(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.SuccessMessage(w, http.StatusCreated, receipt, receipt.Message)
}

func (h *Handler) CashierLastOrder(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Cashier.LastOrder()
	})
}

// CashierReceipt renders the last confirmed order as a PDF.
func (h *Handler) CashierReceipt(w http.ResponseWriter, r *http.Request) {
	c, ok := h.client(w, r)
	if !ok {
		return
	}
	order, err := c.Cashier.LastOrder()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tables := make([]string, 0, len(order.Tables))
	for _, table := range order.Tables {
		tables = append(tables, table.Number)
	}
	payment := order.PaymentMethod
	if method, ok := wizard.LookupPaymentMethod(order.PaymentMethod); ok {
		payment = method.Name
	}
	data := receiptData{
		Title:       "Wulf Coffee & Eatery",
		OrderNumber: order.OrderID,
		Customer:    order.CustomerName,
		Tables:      strings.Join(tables, ", "),
		PlacedAt:    order.ConfirmedAt.In(h.location()).Format("02 Jan 2006 15:04"),
		Total:       order.Total,
		Payment:     payment,
	}
	for _, entry := range order.Items {
		data.Items = append(data.Items, receiptLine{Name: entry.MenuItem.Name, Quantity: entry.Quantity, Subtotal: entry.Subtotal(), Notes: entry.Notes})
	}
	h.writeReceipt(w, r, data)
}
