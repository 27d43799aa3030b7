package handlers

import (
	"net/http"

	"wulf-order-services/internal/session"
	"wulf-order-services/internal/wizard"
	"wulf-order-services/pkg/response"
)

type reservationDateTimeRequest struct {
	Date     string `json:"date" validate:"required"`
	TimeSlot string `json:"timeSlot"`
}

type partySizeRequest struct {
	PartySize int `json:"partySize" validate:"required,min=1,max=20"`
}

type customerInfoRequest struct {
	Name            string `json:"name" validate:"max=120"`
	Phone           string `json:"phone" validate:"max=32"`
	AltNumber       string `json:"altNumber" validate:"max=32"`
	SpecialRequests string `json:"specialRequests" validate:"max=500"`
}

func reservationPlanner(c *session.Client) floorPlanner { return c.Reservation }

func (h *Handler) ReservationRoutes() wizardRoutes {
	return wizardRoutes{
		Tables:      h.floorGet(reservationPlanner),
		ToggleTable: h.floorToggle(reservationPlanner),
		Viewport:    h.floorViewport(reservationPlanner),
		Menu:        h.menuGet(reservationPlanner),
		AddItem:     h.menuAdd(reservationPlanner),
		SetQuantity: h.menuSetQuantity(reservationPlanner),
	}
}

func (h *Handler) ReservationGet(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Reservation.State(), nil
	})
}

func (h *Handler) ReservationSetDateTime(w http.ResponseWriter, r *http.Request) {
	var body reservationDateTimeRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Reservation.SetDateTime(body.Date, body.TimeSlot)
	})
}

func (h *Handler) ReservationSetPartySize(w http.ResponseWriter, r *http.Request) {
	var body partySizeRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Reservation.SetPartySize(body.PartySize)
	})
}

func (h *Handler) ReservationSetCustomer(w http.ResponseWriter, r *http.Request) {
	var body customerInfoRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Reservation.SetCustomer(wizard.CustomerInfo(body)), nil
	})
}

func (h *Handler) ReservationNext(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Reservation.Next()
	})
}

func (h *Handler) ReservationBack(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Reservation.Back()
	})
}

func (h *Handler) ReservationGoTo(w http.ResponseWriter, r *http.Request) {
	var body stepRequest
	if err := decodeJSONBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, func(c *session.Client) (any, error) {
		return c.Reservation.GoTo(body.Step)
	})
}

func (h *Handler) ReservationConfirm(w http.ResponseWriter, r *http.Request) {
	c, ok := h.client(w, r)
	if !ok {
		return
	}
	receipt, err := c.Reservation.Confirm(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.SuccessMessage(w, http.StatusCreated, receipt, receipt.Message)
}
