package httpapi

import (
	"net/http"

	"wulf-order-services/internal/config"
	"wulf-order-services/internal/http/handlers"
	"wulf-order-services/internal/middleware"
	"wulf-order-services/internal/metrics"
	"wulf-order-services/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Options struct {
	Logger   *zap.Logger
	Config   config.Config
	Handler  *handlers.Handler
	WS       *ws.Server
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	h := opts.Handler

	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.ClientID())
	r.Use(middleware.Telemetry(opts.Logger, opts.Metrics))

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				middleware.ClientIDHeader,
				"X-Request-Id",
			},
			ExposedHeaders:   []string{middleware.ClientIDHeader, "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}

		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}

		r.Use(cors.Handler(options))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(opts.Gatherer))
	}

	reservation := h.ReservationRoutes()
	cashier := h.CashierRoutes()

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/menu/{category}", h.PublicMenuCategory)
		r.Post("/menu/{category}/{productId}/cart", h.PublicMenuAddToCart)

		r.Get("/cart", h.PublicCartGet)
		r.Post("/cart/items", h.PublicCartAdd)
		r.Put("/cart/items/{id}", h.PublicCartSetQuantity)
		r.Delete("/cart/items/{id}", h.PublicCartRemove)
		r.Delete("/cart", h.PublicCartClear)

		r.Get("/checkout", h.PublicCheckoutGet)
		r.Put("/checkout/draft", h.PublicCheckoutSaveDraft)
		r.Post("/checkout", h.PublicCheckoutSubmit)
		r.Get("/checkout/payment", h.PublicPaymentGet)
		r.Post("/checkout/payment", h.PublicPaymentConfirm)
		r.Get("/tracking", h.PublicTracking)
		r.Get("/tracking/receipt", h.PublicTrackingReceipt)

		r.Get("/reservation", h.ReservationGet)
		r.Put("/reservation/datetime", h.ReservationSetDateTime)
		r.Put("/reservation/party-size", h.ReservationSetPartySize)
		r.Get("/reservation/tables", reservation.Tables)
		r.Post("/reservation/tables/{tableId}", reservation.ToggleTable)
		r.Post("/reservation/viewport", reservation.Viewport)
		r.Get("/reservation/menu", reservation.Menu)
		r.Post("/reservation/items", reservation.AddItem)
		r.Put("/reservation/items/{menuId}", reservation.SetQuantity)
		r.Put("/reservation/customer", h.ReservationSetCustomer)
		r.Post("/reservation/next", h.ReservationNext)
		r.Post("/reservation/back", h.ReservationBack)
		r.Post("/reservation/step", h.ReservationGoTo)
		r.Post("/reservation/confirm", h.ReservationConfirm)
	})

	r.Route("/api/staff", func(r chi.Router) {
		r.Get("/dashboard", h.StaffDashboard)
		r.Get("/orders", h.StaffOrders)

		r.Get("/cashier", h.CashierGet)
		r.Get("/cashier/tables", cashier.Tables)
		r.Post("/cashier/tables/{tableId}", cashier.ToggleTable)
		r.Post("/cashier/viewport", cashier.Viewport)
		r.Get("/cashier/menu", cashier.Menu)
		r.Post("/cashier/items", cashier.AddItem)
		r.Put("/cashier/items/{menuId}", cashier.SetQuantity)
		r.Put("/cashier/customer", h.CashierSetCustomer)
		r.Put("/cashier/payment-method", h.CashierSetPaymentMethod)
		r.Post("/cashier/next", h.CashierNext)
		r.Post("/cashier/back", h.CashierBack)
		r.Post("/cashier/step", h.CashierGoTo)
		r.Post("/cashier/confirm", h.CashierConfirm)
		r.Get("/cashier/last-order", h.CashierLastOrder)
		r.Get("/cashier/receipt", h.CashierReceipt)

		r.Get("/kitchen", h.KitchenBoard)
		r.Put("/kitchen/orders/{orderId}/items/{itemId}", h.KitchenUpdateItem)
		r.Post("/kitchen/reset", h.KitchenReset)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/summary", h.AdminSummary)
		r.Get("/tabs", h.AdminTabs)
		r.Get("/categories", h.AdminCategories)
		r.Post("/categories", h.AdminCategoryAdd)
		r.Put("/categories/active", h.AdminCategorySetActive)
		r.Delete("/categories/{name}", h.AdminCategoryDelete)
		r.Get("/{tab}", h.AdminList)
		r.Post("/{tab}", h.AdminCreate)
		r.Put("/{tab}/{id}", h.AdminUpdate)
		r.Delete("/{tab}/{id}", h.AdminDelete)
	})

	if opts.WS != nil {
		r.Get("/ws/cart", opts.WS.CartWS)
		r.Get("/ws/kitchen", opts.WS.KitchenWS)
	}

	return r
}
