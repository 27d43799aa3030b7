package handlers

import (
	"net/http"

	"wulf-order-services/internal/cart"
	"wulf-order-services/internal/menu"
	"wulf-order-services/internal/session"
	"wulf-order-services/pkg/response"
)

type addProductRequest struct {
	Quantity int `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type cartView struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice int64       `json:"totalPrice"`
}

func newCartView(items []cart.Item) cartView {
	count, total := cart.Totals(items)
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{Items: items, TotalItems: count, TotalPrice: total}
}

func (h *Handler) PublicMenuCategory(w http.ResponseWriter, r *http.Request) {
	page, err := menu.Category(readPathString(r, "category"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, page)
}

// PublicMenuAddToCart puts a category product into the cart, one unit unless
// a quantity is given.
func (h *Handler) PublicMenuAddToCart(w http.ResponseWriter, r *http.Request) {
	slug := readPathString(r, "category")
	page, err := menu.Category(slug)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	productID, err := readPathInt64(r, "productId")
	if err != nil {
		h.writeError(w, r, errProductNotFound)
		return
	}
	product, ok := page.Product(productID)
	if !ok {
		h.writeError(w, r, errProductNotFound)
		return
	}

	var body addProductRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.respond(w, r, func(c *session.Client) (any, error) {
		items, err := c.Cart.Add(r.Context(), product.CartItem(slug, body.Quantity))
		if err != nil {
			return nil, err
		}
		return newCartView(items), nil
	})
}
