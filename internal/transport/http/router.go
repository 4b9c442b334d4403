// Package http wires the use case interactors into a chi router.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gemforge/pricing-service/internal/transport/http/middleware"
)

// NewRouter builds the HTTP router for the pricing service.
func NewRouter(pricing *PricingHandler, coupon *CouponHandler, admin *AdminHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pricing", func(r chi.Router) {
			r.Post("/quote", pricing.Quote)
			r.Post("/range", pricing.Range)
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Post("/validate", coupon.Validate)
			r.Post("/apply", coupon.Apply)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/config", admin.GetConfig)
			r.Put("/config", admin.PutConfig)
			r.Post("/config/reset", admin.ResetConfig)
			r.Post("/coupons", admin.CreateCoupon)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
