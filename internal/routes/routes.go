package routes

import (
	"time"

	"github.com/alertaya/safezone-backend/internal/authz"
	"github.com/alertaya/safezone-backend/internal/config"
	"github.com/alertaya/safezone-backend/internal/handlers"
	"github.com/alertaya/safezone-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authorizer authz.Authorizer,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	affairHandler *handlers.AffairHandler,
	reportHandler *handlers.ReportHandler,
	surveyHandler *handlers.SurveyHandler,
	interactionHandler *handlers.InteractionHandler,
	newsHandler *handlers.NewsHandler,
	moderationHandler *handlers.ModerationHandler,
	legalHandler *handlers.LegalHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Public
	api.Get("/health", healthHandler.Check)
	api.Get("/affairs", affairHandler.List)
	api.Get("/news", newsHandler.Feed)
	api.Get("/news/:id", newsHandler.Get)
	api.Get("/legal/privacy", legalHandler.PrivacyPolicy)
	api.Get("/legal/terms", legalHandler.TermsOfService)

	// Auth — public, with a stricter rate limit
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

	// Protected routes (JWT required)
	jwt := middleware.JWTProtected(cfg)
	api.Post("/auth/logout", jwt, authHandler.Logout)
	api.Delete("/auth/account", jwt, authHandler.DeleteAccount)

	api.Post("/reports", jwt, reportHandler.Create)
	api.Get("/reports", jwt, reportHandler.List)
	api.Get("/reports/:id", jwt, reportHandler.Get)

	api.Get("/surveys", jwt, surveyHandler.List)
	api.Get("/surveys/:id", jwt, surveyHandler.Get)
	api.Get("/surveys/:id/responded", jwt, surveyHandler.Responded)
	api.Post("/surveys/:id/progress", jwt, surveyHandler.Progress)
	api.Post("/surveys/:id/responses", jwt, surveyHandler.SubmitResponses)

	api.Post("/interactions/toggle", jwt, interactionHandler.Toggle)
	api.Get("/interactions/status", jwt, interactionHandler.Status)

	api.Get("/users/:id", jwt, authHandler.GetProfile)
	api.Post("/blocks", jwt, moderationHandler.BlockUser)
	api.Delete("/blocks/:id", jwt, moderationHandler.UnblockUser)

	// Moderation panel (JWT + moderator capability)
	moderation := api.Group("/moderation", jwt, middleware.ModeratorRequired(authorizer, cfg))
	moderation.Put("/reports/:id/status", moderationHandler.UpdateReportStatus)
	moderation.Post("/bans/:id", moderationHandler.BanUser)
	moderation.Post("/reconcile-counters", moderationHandler.ReconcileCounters)
}
