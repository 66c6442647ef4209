package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/taskmate/taskmate-backend/internal/config"
	"github.com/taskmate/taskmate-backend/internal/handlers"
	"github.com/taskmate/taskmate-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	storageRoot string,
	authHandler *handlers.AuthHandler,
	sessionHandler *handlers.SessionHandler,
	taskHandler *handlers.TaskHandler,
	helperHandler *handlers.HelperHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Uploaded media (profile pictures) served at the durable URLs the
	// media service hands out.
	app.Static("/files", storageRoot)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Session gate state. Public: an absent or invalid token is simply
	// the unauthenticated state.
	api.Get("/session", middleware.JWTOptional(cfg), sessionHandler.Describe)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Protected routes (JWT required) - apply middleware to individual
	// routes so it never affects the public ones.
	jwt := middleware.JWTProtected(cfg)

	api.Post("/tasks", jwt, taskHandler.Create)
	api.Get("/tasks", jwt, taskHandler.List)
	api.Put("/tasks/:id/status", jwt, taskHandler.SetCompleted)
	api.Delete("/tasks/:id", jwt, taskHandler.Delete)

	api.Post("/tasks/:id/helpers", jwt, helperHandler.Add)
	api.Get("/tasks/:id/helpers", jwt, helperHandler.List)
	api.Put("/tasks/:id/helpers/:helperId", jwt, helperHandler.UpdateStatus)

	api.Get("/profile", jwt, profileHandler.Get)
	api.Post("/profile", jwt, profileHandler.Create)
	api.Put("/profile", jwt, profileHandler.Update)
	api.Post("/profile/picture", jwt, profileHandler.UploadPicture)
}
