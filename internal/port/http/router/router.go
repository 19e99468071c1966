package router

import (
	"github.com/diepdx123/be-xuongWorkshop/internal/domain/entity"
	"github.com/diepdx123/be-xuongWorkshop/internal/port/http/handler"
	"github.com/diepdx123/be-xuongWorkshop/internal/port/http/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupAuthRoutes configures signup, signin and the password-reset flow.
func SetupAuthRoutes(r *chi.Mux, authHandler *handler.AuthHandler, jwtSecret string) {
	r.Post("/api/signup", authHandler.Signup)
	r.Post("/api/signin", authHandler.Signin)
	r.Post("/api/forgot-password", authHandler.RequestPasswordReset)
	r.Post("/api/reset-password", authHandler.ResetPassword)

	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.JWTAuth(jwtSecret))
		authRouter.Get("/api/me", authHandler.GetCurrentUser)
	})
}

// SetupCartRoutes configures the cart endpoints. None of them carry auth;
// the owning user is addressed explicitly in the path or body.
func SetupCartRoutes(r *chi.Mux, cartHandler *handler.CartHandler) {
	r.Get("/api/cart/{userId}", cartHandler.GetCartByUserID)
	r.Post("/api/cart", cartHandler.AddItemToCart)
	r.Put("/api/cart/increase", cartHandler.IncreaseProductQuantity)
	r.Put("/api/cart/decrease", cartHandler.DecreaseProductQuantity)
	r.Delete("/api/cart", cartHandler.RemoveItemFromCart)
}

// SetupProductRoutes configures product CRUD. Mutations are deliberately
// left open, matching the behavior this service replaces.
func SetupProductRoutes(r *chi.Mux, productHandler *handler.ProductHandler) {
	r.Get("/api/products", productHandler.List)
	r.Get("/api/products/{id}", productHandler.GetByID)
	r.Post("/api/products", productHandler.Create)
	r.Put("/api/products/{id}", productHandler.Update)
	r.Delete("/api/products/{id}", productHandler.Delete)
}

// SetupCategoryRoutes configures category CRUD. Reads are public; mutations
// require an admin session token.
func SetupCategoryRoutes(r *chi.Mux, categoryHandler *handler.CategoryHandler, jwtSecret string) {
	r.Get("/api/categories", categoryHandler.List)
	r.Get("/api/categories/{id}", categoryHandler.GetByID)

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(middleware.JWTAuth(jwtSecret))
		adminRouter.Use(middleware.RequireRole(entity.RoleAdmin))

		adminRouter.Post("/api/categories", categoryHandler.Create)
		adminRouter.Put("/api/categories/{id}", categoryHandler.Update)
		adminRouter.Delete("/api/categories/{id}", categoryHandler.Delete)
	})
}
