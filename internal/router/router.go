package router

import (
	"net/http"

	"victus-storefront/internal/handler"
	"victus-storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Admin    *handler.AdminHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// The gatherer backs /metrics; nil uses the default registry.
func New(h Handlers, apiKey string, gatherer prometheus.Gatherer, logger zerolog.Logger) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()

	// Recovery -> Logging -> CORS, then metrics and token forwarding
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)
	r.Use(middleware.BearerToken)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.Cart.CreateSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Delete("/", h.Cart.DeleteSession)
				r.Post("/checkout", h.Checkout.Submit)

				r.Route("/cart", func(r chi.Router) {
					r.Get("/", h.Cart.GetCart)
					r.Delete("/", h.Cart.ClearCart)
					r.Post("/items", h.Cart.AddItem)
					r.Put("/items/{variantID}", h.Cart.UpdateItem)
					r.Delete("/items/{variantID}", h.Cart.RemoveItem)
					r.Post("/coupon", h.Cart.ApplyCoupon)
					r.Delete("/coupon", h.Cart.RemoveCoupon)
				})
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.GetAll)
			r.Get("/{id}", h.Product.GetByID)
			r.Get("/{id}/variants", h.Product.Variants)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Order.List)
			r.Get("/{id}", h.Order.GetByID)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(apiKey, logger))

			r.Get("/dashboard", h.Admin.Dashboard)
			r.Post("/coupons", h.Admin.CreateCoupon)
			r.Post("/coupons/preview", h.Admin.PreviewCoupon)
		})
	})

	return r
}
