package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hgl-interieur/ordertrack-api/internal/application/auth"
	"github.com/hgl-interieur/ordertrack-api/internal/application/usecase"
	infrapdf "github.com/hgl-interieur/ordertrack-api/internal/infrastructure/pdf"
	"github.com/hgl-interieur/ordertrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/hgl-interieur/ordertrack-api/internal/interfaces/http"
	"github.com/hgl-interieur/ordertrack-api/pkg/config"
	"github.com/hgl-interieur/ordertrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	// Explicit startup validation: missing required variables are logged
	// as critical, but the process keeps running so the dashboard stays
	// reachable while ops fixes the environment.
	if res := cfg.Validate(); !res.OK() {
		log.Error().
			Str("missing", strings.Join(res.Missing, ", ")).
			Msg("configuration incomplete, some endpoints will fail")
	} else {
		log.Info().Msg("configuration check passed")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	permRepo := postgres.NewColumnPermissionRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.ExpMinutes,
		BearerTTL:  time.Duration(cfg.JWT.BearerExpHours) * time.Hour,
		Issuer:     cfg.JWT.Issuer,
	})
	orderUC := usecase.NewOrderUseCase(orderRepo, permRepo)
	permUC := usecase.NewPermissionUseCase(permRepo, userRepo)
	werkbonUC := usecase.NewWerkbonUseCase(orderRepo, infrapdf.NewMarotoWerkbonGenerator(cfg.App.PublicBaseURL))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in local development: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ordertrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		OrderUC:      orderUC,
		WerkbonUC:    werkbonUC,
		PermissionUC: permUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
