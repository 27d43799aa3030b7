package handlers

import (
	"net/http"

	"wulf-order-services/internal/session"
	"wulf-order-services/internal/wizard"
)

// floorPlanner is the table and menu picking both wizards share.
type floorPlanner interface {
	Floor(search string) wizard.FloorView
	ToggleTable(id string) (wizard.FloorView, error)
	Viewport(cmd wizard.ViewportCommand) (wizard.FloorView, error)
	Menu(search, category string) wizard.MenuView
	AddItem(menuID, notes string) (wizard.MenuView, error)
	SetItemQuantity(menuID string, quantity int) (wizard.MenuView, error)
}

type addEntryRequest struct {
	MenuID string `json:"menuId" validate:"required"`
	Notes  string `json:"notes" validate:"max=300"`
}

type entryQuantityRequest struct {
	Quantity int `json:"quantity" validate:"max=999"`
}

type stepRequest struct {
	Step wizard.Step `json:"step" validate:"required"`
}

func (h *Handler) floorGet(pick func(*session.Client) floorPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, func(c *session.Client) (any, error) {
			return pick(c).Floor(readQuery(r, "search")), nil
		})
	}
}

func (h *Handler) floorToggle(pick func(*session.Client) floorPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := readPathString(r, "tableId")
		h.respond(w, r, func(c *session.Client) (any, error) {
			return pick(c).ToggleTable(tableID)
		})
	}
}

func (h *Handler) floorViewport(pick func(*session.Client) floorPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cmd wizard.ViewportCommand
		if err := decodeJSONBody(r, &cmd); err != nil {
			h.writeError(w, r, err)
			return
		}
		h.respond(w, r, func(c *session.Client) (any, error) {
			return pick(c).Viewport(cmd)
		})
	}
}

func (h *Handler) menuGet(pick func(*session.Client) floorPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, func(c *session.Client) (any, error) {
			return pick(c).Menu(readQuery(r, "search"), readQuery(r, "category")), nil
		})
	}
}

func (h *Handler) menuAdd(pick func(*session.Client) floorPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addEntryRequest
		if err := decodeJSONBody(r, &body); err != nil {
			h.writeError(w, r, err)
			return
		}
		h.respond(w, r, func(c *session.Client) (any, error) {
			return pick(c).AddItem(body.MenuID, body.Notes)
		})
	}
}

func (h *Handler) menuSetQuantity(pick func(*session.Client) floorPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuID := readPathString(r, "menuId")
		var body entryQuantityRequest
		if err := decodeJSONBody(r, &body); err != nil {
			h.writeError(w, r, err)
			return
		}
		h.respond(w, r, func(c *session.Client) (any, error) {
			return pick(c).SetItemQuantity(menuID, body.Quantity)
		})
	}
}
