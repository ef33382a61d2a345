package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ovenline/pizza-storefront/internal/httpx/middlewares"
)

// NewRouter wires the storefront and back-office routes. adminToken
// guards everything under /admin; an empty token disables that surface.
func NewRouter(handler *Handler, admin *AdminHandler, adminToken string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Customer-facing storefront. Every cart route is scoped to the
	// session attached by the middleware.
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AttachSession)

		r.Get("/pizzas", handler.ListPizzas)
		r.Get("/pizzas/{id}", handler.GetPizza)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", handler.GetCart)
			r.Delete("/", handler.ClearCart)
			r.Get("/summary", handler.GetSummary)

			r.Post("/items", handler.AddCartItem)
			r.Patch("/items/{id}", handler.UpdateCartItem)
			r.Delete("/items/{id}", handler.RemoveCartItem)
			r.Post("/items/{id}/duplicate", handler.DuplicateCartItem)
			r.Post("/items/{id}/save", handler.SaveCartItem)
			r.Post("/items/{id}/move", handler.MoveCartItem)
			r.Post("/restore", handler.RestoreCartItem)

			r.Post("/promo", handler.ApplyPromo)
			r.Delete("/promo", handler.RemovePromo)
		})

		r.Post("/checkout", handler.Checkout)
		r.Get("/orders/{id}/track", handler.TrackOrder)
	})

	// Back-office.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.RequireAdminToken(adminToken))

		r.Post("/pizzas", admin.CreatePizza)
		r.Put("/pizzas/{id}", admin.UpdatePizza)
		r.Delete("/pizzas/{id}", admin.DeletePizza)

		r.Get("/orders", admin.ListOrders)
		r.Get("/orders/{id}", admin.GetOrder)
		r.Patch("/orders/{id}/status", admin.UpdateOrderStatus)

		r.Get("/users", admin.ListUsers)
		r.Post("/users", admin.CreateUser)
		r.Get("/users/{id}", admin.GetUser)
		r.Put("/users/{id}", admin.UpdateUser)
		r.Delete("/users/{id}", admin.DeleteUser)

		r.Get("/settings", admin.ListSettings)
		r.Put("/settings/{key}", admin.PutSetting)
		r.Delete("/settings/{key}", admin.DeleteSetting)

		r.Get("/reports/revenue", admin.RevenueReport)
		r.Get("/reports/statuses", admin.StatusReport)
		r.Get("/reports/top-pizzas", admin.TopPizzasReport)
	})

	return r
}
