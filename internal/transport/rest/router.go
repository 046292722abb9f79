package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/inventory-tracker/internal/auth"
	"github.com/frahmantamala/inventory-tracker/internal/category"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/dashboard"
	"github.com/frahmantamala/inventory-tracker/internal/inventory"
	"github.com/frahmantamala/inventory-tracker/internal/transport/middleware"
	"github.com/frahmantamala/inventory-tracker/internal/transport/swagger"
	"github.com/frahmantamala/inventory-tracker/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups everything the router mounts. Nil handlers leave their
// routes unregistered.
type Handlers struct {
	Health    *HealthHandler
	Auth      *auth.Handler
	RBAC      *auth.RBACAuthorization
	User      *user.Handler
	Inventory *inventory.Handler
	Category  *category.Handler
	Dashboard *dashboard.Handler

	// Validator checks requests against the API contract when set.
	Validator func(http.Handler) http.Handler
	// Spec is the raw contract served at /openapi.yml.
	Spec []byte
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, allowedOrigins string, logger *slog.Logger) {
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.CORS(allowedOrigins))

	if len(h.Spec) > 0 {
		router.Get(swagger.SpecPath, swagger.SpecHandler(h.Spec))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		if h.Validator != nil {
			r.Use(h.Validator)
		}

		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		if h.Category != nil {
			r.Get("/categories", h.Category.GetCategories)
		}

		if h.Auth == nil {
			return
		}

		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Post("/auth/logout", h.Auth.Logout)

			if h.User != nil {
				pr.Route("/users", func(ur chi.Router) {
					ur.Get("/me", h.User.GetCurrentUser)
					ur.With(h.RBAC.RequireAdmin()).Get("/", h.User.ListUsers)
					// The user store owns the admin and protected-admin checks for
					// mutations so their order stays in one place.
					ur.Post("/", h.User.CreateUser)
					ur.Patch("/{id}", h.User.UpdateUser)
					ur.Delete("/{id}", h.User.DeleteUser)
				})
			}

			if h.Inventory != nil {
				pr.Route("/items", func(ir chi.Router) {
					ir.Get("/", h.Inventory.ListItems)
					ir.Get("/form-defaults", h.Inventory.FormDefaults)
					ir.Get("/{id}", h.Inventory.GetItem)
					ir.With(h.RBAC.Middleware(coreUser.PermissionAdd)).Post("/", h.Inventory.CreateItem)
					// Edit and delete are checked by the store after the item is
					// found, so a missing id is a 404 for everyone.
					ir.Patch("/{id}", h.Inventory.UpdateItem)
					ir.Delete("/{id}", h.Inventory.DeleteItem)
				})
			}

			if h.Category != nil {
				pr.Get("/categories/in-use", h.Category.GetCategoriesInUse)
			}

			if h.Dashboard != nil {
				pr.Get("/dashboard", h.Dashboard.GetOverview)
				pr.Get("/analytics", h.Dashboard.GetAnalytics)
				pr.Get("/departments/{department}/summary", h.Dashboard.GetDepartmentSummary)
			}
		})
	})
}
