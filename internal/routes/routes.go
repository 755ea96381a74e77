package routes

import (
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/config"
	"github.com/campuspulse/mental-pulse-backend/internal/handlers"
	"github.com/campuspulse/mental-pulse-backend/internal/middleware"
	"github.com/campuspulse/mental-pulse-backend/internal/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Mood       *handlers.MoodHandler
	Chat       *handlers.ChatHandler
	Crisis     *handlers.CrisisHandler
	Mentor     *handlers.MentorHandler
	Connection *handlers.ConnectionHandler
	Campaign   *handlers.CampaignHandler
	Resource   *handlers.ResourceHandler
	Admin      *handlers.AdminHandler
	Health     *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, hub *realtime.Hub, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Public auth endpoints, stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)

	// Everything below requires a valid token and an active account.
	protected := api.Group("", middleware.JWTProtected(cfg), middleware.ActiveUserRequired(db))

	protected.Get("/users/me", h.User.GetProfile)
	protected.Patch("/users/me/privacy", h.User.UpdatePrivacy)

	protected.Post("/check-ins", h.Mood.CreateEntry)
	protected.Get("/check-ins", h.Mood.ListEntries)
	protected.Get("/check-ins/history", h.Mood.History)

	protected.Post("/chatbot/chat", h.Chat.SendMessage)
	protected.Get("/chatbot/chat", h.Chat.ListSessions)
	protected.Delete("/chatbot/chat", h.Chat.ClearSessions)

	protected.Post("/crisis/alert", h.Crisis.CreateAlert)

	protected.Get("/mentors", h.Mentor.ListMentors)
	protected.Post("/mentors/profile", h.Mentor.CreateProfile)
	protected.Patch("/mentors/profile", h.Mentor.UpdateProfile)
	protected.Get("/mentors/:mentorId", h.Mentor.GetMentor)

	protected.Post("/connections", h.Connection.RequestConnection)
	protected.Get("/connections", h.Connection.ListConnections)
	protected.Get("/connections/:requestId", h.Connection.GetConnection)
	protected.Patch("/connections/:requestId", h.Connection.DecideConnection)

	protected.Get("/campaigns", h.Campaign.ListCampaigns)
	protected.Get("/resources", h.Resource.ListResources)

	// Admin panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.ActiveUserRequired(db), middleware.AdminRequired())
	admin.Get("/overview", h.Admin.Overview)
	admin.Get("/heatmap", h.Admin.Heatmap)
	admin.Get("/crisis-alerts", h.Crisis.ListAlerts)
	admin.Patch("/crisis-alerts", h.Crisis.UpdateAlert)
	admin.Post("/campaigns", h.Campaign.CreateCampaign)
	admin.Patch("/campaigns/:campaignId", h.Campaign.UpdateCampaign)
	admin.Post("/resources", h.Resource.CreateResource)
	admin.Patch("/resources/:resourceId", h.Resource.UpdateResource)
	admin.Delete("/resources/:resourceId", h.Resource.DeleteResource)

	// Push channel, outside the /api rate limiter.
	app.Use("/ws", realtime.Upgrade(db, cfg))
	app.Get("/ws", realtime.Serve(hub))
}
