package handlers

import (
	"net/http"

	"wulf-order-services/internal/monitor"
	"wulf-order-services/pkg/response"
)

type orderMonitorView struct {
	Filter string          `json:"filter"`
	Orders []monitor.Order `json:"orders"`
	Counts map[string]int  `json:"counts"`
}

func (h *Handler) StaffOrders(w http.ResponseWriter, r *http.Request) {
	filter := readQuery(r, "filter")
	if filter == "" {
		filter = monitor.FilterAll
	}
	all := monitor.SampleOrders(h.now())
	orders, err := monitor.Filter(all, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Success(w, orderMonitorView{Filter: filter, Orders: orders, Counts: monitor.StatusCounts(all)})
}

func (h *Handler) StaffDashboard(w http.ResponseWriter, r *http.Request) {
	username := readQuery(r, "username")
	if username == "" {
		username = "Staff"
	}
	now := h.now()
	response.Success(w, monitor.BuildDashboard(username, monitor.SampleOrders(now), now))
}
