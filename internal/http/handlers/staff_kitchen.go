package handlers

import (
	"net/http"
	"time"

	"wulf-order-services/internal/kitchen"
	"wulf-order-services/internal/session"
)

type kitchenItemView struct {
	kitchen.Item
	ProcessingMinutes int `json:"processingMinutes"`
}

type kitchenOrderView struct {
	kitchen.Order
	Items          []kitchenItemView   `json:"items"`
	ProcessingTime string              `json:"processingTime"`
	Since          string              `json:"since"`
	Comparison     *kitchen.Comparison `json:"comparison,omitempty"`
}

type kitchenBoardView struct {
	Filter string             `json:"filter"`
	Orders []kitchenOrderView `json:"orders"`
	Counts kitchen.Counts     `json:"counts"`
}

type kitchenItemStatusRequest struct {
	Status kitchen.Status `json:"status" validate:"required,oneof=ready completed"`
}

func newKitchenOrderView(order kitchen.Order, now time.Time) kitchenOrderView {
	view := kitchenOrderView{
		Order:          order,
		Items:          make([]kitchenItemView, 0, len(order.Items)),
		ProcessingTime: kitchen.ProcessingTime(order, now),
		Since:          kitchen.Since(order.OrderTime, now),
		Comparison:     kitchen.CompareToEstimate(order),
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, kitchenItemView{Item: item, ProcessingMinutes: kitchen.ItemProcessingMinutes(item, order.OrderTime, now)})
	}
	return view
}

func (h *Handler) KitchenBoard(w http.ResponseWriter, r *http.Request) {
	filter := readQuery(r, "filter")
	if filter == "" {
		filter = kitchen.FilterAll
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		orders, err := c.Kitchen.Filter(filter)
		if err != nil {
			return nil, err
		}
		now := h.now()
		view := kitchenBoardView{Filter: filter, Orders: make([]kitchenOrderView, 0, len(orders)), Counts: c.Kitchen.Counts()}
		for _, order := range orders {
			view.Orders = append(view.Orders, newKitchenOrderView(order, now))
		}
		return view, nil
	})
}

func (h *Handler) KitchenUpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID := readPathString(r, "orderId")
	itemID, err := readPathInt64(r, "itemId")
	if err != nil {
		h.writeError(w, r, kitchen.ErrItemNotFound)
		return
	}
	var body kitchenItemStatusRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		order, err := c.Kitchen.UpdateItemStatus(r.Context(), orderID, itemID, body.Status)
		if err != nil {
			return nil, err
		}
		return newKitchenOrderView(order, h.now()), nil
	})
}

func (h *Handler) KitchenReset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		orders, err := c.Kitchen.Reset(r.Context())
		if err != nil {
			return nil, err
		}
		now := h.now()
		view := kitchenBoardView{Filter: kitchen.FilterAll, Orders: make([]kitchenOrderView, 0, len(orders)), Counts: c.Kitchen.Counts()}
		for _, order := range orders {
			view.Orders = append(view.Orders, newKitchenOrderView(order, now))
		}
		return view, nil
	})
}
