package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sipcircle/sipcircle/pkg/logger"
	storage "github.com/sipcircle/sipcircle/pkg/redis"
)

type Options struct {
	Rclient *storage.RedisClient
	Logger  *logger.Logger
}

// Protected requires a valid access token (cookie or bearer header) and puts
// the caller's identity into request locals.
func Protected(opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")
		if token == "" {
			header := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing access token",
			})
		}

		if opt.Rclient != nil {
			if opt.Rclient.Exists(c.Context(), "blacklist:access:"+token).Val() > 0 {
				opt.Logger.Warn(c.Context()).Logs("Attempted use of blacklisted access token")
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Access token has been invalidated",
				})
			}
		}

		claims, err := VerifyToken(token)
		if err != nil {
			opt.Logger.Warn(c.Context()).WithFields("error", err).Logs("Invalid access token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid access token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("is_admin", claims.IsAdmin)
		c.Locals("access_token", token)
		c.SetUserContext(logger.SetupRoutesContext(c))
		return c.Next()
	}
}

// AdminOnly rejects callers whose token lacks the admin flag. Must run after
// Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals("is_admin").(bool)
		if !ok || !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}
		return c.Next()
	}
}
