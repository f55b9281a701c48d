package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/lenden-pay/lenden/internal/auth"
	"github.com/lenden-pay/lenden/internal/config"
	"github.com/lenden-pay/lenden/internal/identity"
	"github.com/lenden-pay/lenden/internal/middleware"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// The in-memory directory is a development convenience only.
	if !d.Cfg.IsDev() && d.DB == nil {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{AllowOrigins: d.Cfg.AllowedOrigins}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Liveness probe kept deliberately dumb: no dependency pings here.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("server is up")
	})

	RegisterHealthRoutes(app, d)

	var repo identity.Repository
	if d.DB != nil {
		repo = identity.NewPostgresRepository(d.DB)
	} else {
		repo = identity.NewMemoryRepository()
	}

	hasher := auth.NewHasher(d.Cfg.PINSecret)
	tokens := auth.NewTokenIssuer(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	svc := identity.NewService(repo, hasher, tokens)
	h := identity.NewHandler(svc, d.Cfg.AllowedRoles)

	app.Post("/register", h.Register)
	app.Post("/signin", h.SignIn)
	app.Get("/authentication", middleware.BearerAuth(tokens), h.Authenticate)

	return nil
}
