package handlers

import (
	"time"

	"wulf-order-services/internal/admin"
	"wulf-order-services/internal/config"
	"wulf-order-services/internal/session"

	"go.uber.org/zap"
)

type Handler struct {
	Logger   *zap.Logger
	Config   config.Config
	Sessions *session.Registry
	Admin    *admin.Service
	Location *time.Location
	Now      func() time.Time
}

func (h *Handler) now() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	if h.Location != nil {
		return now().In(h.Location)
	}
	return now()
}
