package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sreemonkavungal/BurgerByte/internal/metrics"
	"github.com/sreemonkavungal/BurgerByte/internal/service"
)

type RouterDeps struct {
	Auth    *service.AuthService
	Cart    *service.CartService
	Orders  *service.OrderService
	Reports *service.ReportService
	Users   *service.UserService
	Catalog *service.CatalogService
	Metrics *metrics.ServerMetrics

	RequestTimeout time.Duration
}

// NewRouter wires the full HTTP surface. Public catalog routes carry
// optional auth so admins see unavailable products; everything under
// /api/admin requires the admin role.
func NewRouter(deps RouterDeps) chi.Router {
	authHandler := NewAuthHandler(deps.Auth)
	cartHandler := NewCartHandler(deps.Cart)
	orderHandler := NewOrderHandler(deps.Orders)
	adminHandler := NewAdminHandler(deps.Orders, deps.Reports, deps.Users)
	productHandler := NewProductHandler(deps.Catalog)
	categoryHandler := NewCategoryHandler(deps.Catalog)
	favoriteHandler := NewFavoriteHandler(deps.Users)

	requireAuth := AuthMiddleware(deps.Auth)
	optionalAuth := OptionalAuthMiddleware(deps.Auth)

	timeout := deps.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.With(optionalAuth).Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
			r.With(requireAuth, AdminOnly).Post("/", productHandler.Create)
			r.With(requireAuth, AdminOnly).Put("/{id}", productHandler.Update)
			r.With(requireAuth, AdminOnly).Delete("/{id}", productHandler.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.With(requireAuth, AdminOnly).Post("/", categoryHandler.Create)
			r.With(requireAuth, AdminOnly).Put("/{id}", categoryHandler.Update)
			r.With(requireAuth, AdminOnly).Delete("/{id}", categoryHandler.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", cartHandler.Get)
			r.Post("/", cartHandler.Add)
			r.Delete("/", cartHandler.Clear)
			r.Delete("/{itemId}", cartHandler.Remove)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", favoriteHandler.List)
			r.Post("/{productId}", favoriteHandler.Add)
			r.Delete("/{productId}", favoriteHandler.Remove)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", orderHandler.Create)
			r.Get("/", orderHandler.ListMine)
			r.Get("/{id}", orderHandler.Get)
			r.Post("/{id}/refund", orderHandler.RequestRefund)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth, AdminOnly)
			r.Get("/orders", adminHandler.ListOrders)
			r.Patch("/orders/{id}/status", adminHandler.UpdateOrderStatus)
			r.Get("/reports/sales", adminHandler.SalesReport)
			r.Get("/users", adminHandler.ListUsers)
		})
	})

	return r
}
