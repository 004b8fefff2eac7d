package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	v1 "github.com/sipcircle/sipcircle/internal/api/v1"
	"github.com/sipcircle/sipcircle/internal/auth"
	"github.com/sipcircle/sipcircle/internal/config"
	"github.com/sipcircle/sipcircle/pkg/logger"
	storage "github.com/sipcircle/sipcircle/pkg/redis"
	"gorm.io/gorm"
)

// NewRoutes mounts the middleware stack and all v1 routes. Lifecycles of the
// database, Redis client and logger stay with the caller.
func NewRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB, log *logger.Logger, rclient *storage.RedisClient) {
	app.Use(
		recover.New(),
		cors.New(
			cors.Config{
				AllowOrigins:     cfg.AppURL,
				AllowCredentials: true,
				AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			},
		),
		compress.New(
			compress.Config{
				Level: compress.LevelBestSpeed,
			},
		),
		limiter.New(
			limiter.Config{
				Expiration: 1 * time.Minute,
				Max:        60,
				KeyGenerator: func(c *fiber.Ctx) string {
					return c.IP()
				},
			},
		),
	)
	app.Use(log.Middleware())

	h := v1.NewHandlers(db, rclient, log, cfg)
	protected := auth.Protected(auth.Options{Rclient: rclient, Logger: log})

	api := app.Group("/api/v1")

	api.Post("/auth/register", h.Register)
	api.Post("/auth/login", h.Login)
	api.Post("/auth/logout", protected, h.Logout)

	api.Get("/users/:id", h.GetUser)
	api.Get("/users/:id/followers", h.ListFollowers)
	api.Get("/users/:id/following", h.ListFollowing)
	api.Post("/users/:id/follow", protected, h.FollowUser)
	api.Delete("/users/:id/follow", protected, h.UnfollowUser)
	api.Get("/users/:id/follow", protected, h.CheckFollowing)

	api.Post("/beverages", protected, auth.AdminOnly(), h.CreateBeverage)
	api.Get("/beverages", h.ListBeverages)
	api.Get("/beverages/:id", h.GetBeverage)

	api.Post("/reviews", protected, h.CreateReview)
	api.Get("/reviews", h.ListReviews)
	api.Get("/reviews/:id", h.GetReview)
	api.Delete("/reviews/:id", protected, h.DeleteReview)

	api.Post("/reviews/:id/like", protected, h.LikeReview)
	api.Delete("/reviews/:id/like", protected, h.UnlikeReview)
	api.Get("/reviews/:id/like", protected, h.CheckLiked)
	api.Post("/reviews/:id/comments", protected, h.CreateComment)
	api.Get("/reviews/:id/comments", h.ListComments)

	api.Get("/notifications", protected, h.ListNotifications)
	api.Patch("/notifications/:id/read", protected, h.MarkNotificationRead)
	api.Post("/notifications/read-all", protected, h.MarkAllNotificationsRead)
	api.Get("/notifications/preferences", protected, h.GetPreferences)
	api.Put("/notifications/preferences", protected, h.UpdatePreferences)
}
