package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	TagUC      *usecase.TagUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// Política de acceso:
//   - /api/auth/login es público
//   - lecturas requieren sesión (cualquier rol)
//   - escrituras de catálogo requieren admin o manager
//   - gestión de usuarios requiere admin
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	writers := []string{entity.RoleAdmin, entity.RoleManager}

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/change-password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(writers...), productHandler.Create)
	products.Put("/:id", RequireRole(writers...), productHandler.Update)
	products.Delete("/:id", RequireRole(writers...), productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", RequireRole(writers...), categoryHandler.Create)
	categories.Put("/:id", RequireRole(writers...), categoryHandler.Update)
	categories.Delete("/:id", RequireRole(writers...), categoryHandler.Delete)

	// Tags
	tags := protected.Group("/tags")
	tagHandler := NewTagHandler(deps.TagUC)
	tags.Get("/", tagHandler.List)
	tags.Get("/:id", tagHandler.GetByID)
	tags.Post("/", RequireRole(writers...), tagHandler.Create)
	tags.Put("/:id", RequireRole(writers...), tagHandler.Update)
	tags.Delete("/:id", RequireRole(writers...), tagHandler.Delete)
}
