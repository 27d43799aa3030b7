package handlers

import (
	"net/http"

	"wulf-order-services/internal/cart"
	"wulf-order-services/internal/session"
)

type cartItemRequest struct {
	ID          int64  `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0,lte=100000000"`
	Image       string `json:"image"`
	Category    string `json:"category" validate:"required"`
	Quantity    int    `json:"quantity" validate:"omitempty,min=1,max=999"`
}

type cartQuantityRequest struct {
	Category string `json:"category" validate:"required"`
	Quantity int    `json:"quantity" validate:"max=999"`
}

func (h *Handler) PublicCartGet(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return newCartView(c.Cart.Items()), nil
	})
}

func (h *Handler) PublicCartAdd(w http.ResponseWriter, r *http.Request) {
	var body cartItemRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		items, err := c.Cart.Add(r.Context(), cart.Item{
			ID:          body.ID,
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			Image:       body.Image,
			Category:    body.Category,
			Quantity:    body.Quantity,
		})
		if err != nil {
			return nil, err
		}
		return newCartView(items), nil
	})
}

// PublicCartSetQuantity removes the entry when quantity is below one.
func (h *Handler) PublicCartSetQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := readPathInt64(r, "id")
	if err != nil {
		h.writeError(w, r, errMissingParam)
		return
	}
	var body cartQuantityRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		items, err := c.Cart.SetQuantity(r.Context(), id, body.Category, body.Quantity)
		if err != nil {
			return nil, err
		}
		return newCartView(items), nil
	})
}

func (h *Handler) PublicCartRemove(w http.ResponseWriter, r *http.Request) {
	id, err := readPathInt64(r, "id")
	if err != nil {
		h.writeError(w, r, errMissingParam)
		return
	}
	category := readQuery(r, "category")
	if category == "" {
		h.writeError(w, r, &validationError{message: "validation failed", details: map[string]string{"category": "is required"}})
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		items, err := c.Cart.Remove(r.Context(), id, category)
		if err != nil {
			return nil, err
		}
		return newCartView(items), nil
	})
}

func (h *Handler) PublicCartClear(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		if err := c.Cart.Clear(r.Context()); err != nil {
			return nil, err
		}
		return newCartView(nil), nil
	})
}
