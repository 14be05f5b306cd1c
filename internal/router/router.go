package router

import (
	"net/http"

	"mattress-shop/internal/handler"
	"mattress-shop/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Promo    *handler.PromoHandler
	Payment  *handler.PaymentHandler
	Delivery *handler.DeliveryHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// Storefront routes under /store are public; /admin routes require the API key.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware order: RequestID -> Recovery -> Logging -> CORS
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/store", func(r chi.Router) {
		r.Get("/products", h.Product.GetAll)
		r.Get("/products/{id}", h.Product.GetByID)

		r.Post("/orders", h.Order.Create)
		r.Get("/orders/{orderNumber}", h.Order.GetByOrderNumber)

		r.Post("/promo-codes", h.Promo.Check)

		r.Post("/payments/webhook", h.Payment.Webhook)
		r.Post("/payments/initiate/{id}", h.Payment.Initiate)

		r.Get("/delivery/cities", h.Delivery.Cities)
		r.Get("/delivery/warehouses", h.Delivery.Warehouses)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(apiKey, logger))

		r.Post("/products", h.Product.Create)

		r.Get("/orders", h.Order.List)
		r.Patch("/orders/{id}/status", h.Order.UpdateStatus)

		r.Post("/promo-codes", h.Promo.Create)
		r.Get("/promo-codes", h.Promo.List)
		r.Put("/promo-codes/{id}", h.Promo.Update)
		r.Delete("/promo-codes/{id}", h.Promo.Delete)
	})

	return r
}
