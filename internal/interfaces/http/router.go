package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hgl-interieur/ordertrack-api/internal/application/auth"
	"github.com/hgl-interieur/ordertrack-api/internal/application/usecase"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
	"github.com/hgl-interieur/ordertrack-api/internal/metrics"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	OrderUC      *usecase.OrderUseCase
	WerkbonUC    *usecase.WerkbonUseCase
	PermissionUC *usecase.PermissionUseCase
	JWTSecret    string
	Log          zerolog.Logger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(metrics.Middleware())

	api := app.Group("/api")

	// Auth (public). Login is rate limited against brute force.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/login", limiter.New(limiter.Config{Max: 10}), authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/guest", authHandler.Guest)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleBeheerder),
		authHandler.Register)

	// Bearer-token issuance from an active session.
	api.Get("/get-token", AuthMiddleware(deps.JWTSecret), authHandler.GetToken)

	// Permissions.
	permHandler := NewPermissionHandler(deps.PermissionUC, deps.Log)
	api.Get("/permissions", AuthMiddleware(deps.JWTSecret), permHandler.List)
	api.Put("/permissions",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleBeheerder),
		permHandler.Upsert)

	// Orders. The dashboard list and the scan lookup are reachable
	// without a session; mutations are role-gated per column.
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.WerkbonUC, deps.Log)
	orders.Get("/", orderHandler.List)
	orders.Get("/scan/:orderNumber", orderHandler.Scan)
	orders.Post("/",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleBeheerder, entity.RolePlanner),
		orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id", AuthMiddleware(deps.JWTSecret), orderHandler.Update)
	orders.Get("/:id/werkbon", AuthMiddleware(deps.JWTSecret), orderHandler.Werkbon)

	// Prometheus scrape endpoint.
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
