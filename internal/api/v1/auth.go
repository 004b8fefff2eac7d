package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sipcircle/sipcircle/internal/auth"
	models "github.com/sipcircle/sipcircle/internal/models/user"
	"github.com/sipcircle/sipcircle/pkg/utils"
)

// Register creates an account and its default notification preferences.
func (h *Handlers) Register(c *fiber.Ctx) error {
	type UserInput struct {
		Name            string `json:"name" validate:"omitempty,max=100"`
		Username        string `json:"username" validate:"required,min=3,max=50,alphanum"`
		Email           string `json:"email" validate:"required,email,max=100"`
		Password        string `json:"password" validate:"required,min=6,eqfield=ConfirmPassword"`
		ConfirmPassword string `json:"confirm_password" validate:"required,min=6"`
	}
	ui := new(UserInput)
	if err := utils.StrictBodyParser(c, &ui); err != nil {
		h.Logger.Warn(c.Context()).WithFields("error", err).Logs(fmt.Sprintf("Failed to parse request body: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if err := h.Validator.Validate(ui); err != nil {
		h.Logger.Warn(c.Context()).Logs("Validation failed on register")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}

	ui.Email = strings.ToLower(strings.TrimSpace(ui.Email))

	hashedPass, err := utils.HashPassword(ui.Password)
	if err != nil {
		h.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to hash password")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process password",
		})
	}

	user, err := models.NewUser(c.Context(), h.Redis, h.DB, ui.Username, ui.Email, hashedPass, models.WithName(ui.Name))
	if err != nil {
		if utils.IsKind(err, utils.KindConflict) {
			h.Logger.Warn(c.Context()).Logs(fmt.Sprintf("Duplicate username or email: %s", ui.Email))
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Username or email already exists",
			})
		}
		h.Logger.Error(c.Context()).Logs(fmt.Sprintf("Failed to create user: %v", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	if _, err := models.NewNotificationPreferences(c.Context(), h.Redis, h.DB, user.ID); err != nil {
		// Defaults apply when the row is missing, so this is not fatal.
		h.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to create notification preferences")
	}

	h.Logger.Info(c.Context()).Logs(fmt.Sprintf("User registered: %s (ID: %s)", ui.Username, user.ID.String()))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Login verifies credentials and issues the token pair as cookies.
func (h *Handlers) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	li := new(LoginInput)
	if err := utils.StrictBodyParser(c, &li); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}
	if err := h.Validator.Validate(li); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}

	user, err := models.GetUserBy(c.Context(), h.Redis, h.DB, "email = ?", []interface{}{strings.ToLower(strings.TrimSpace(li.Email))})
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	if err := utils.ComparePasswords(user.Password, li.Password); err != nil {
		h.Logger.Warn(c.Context()).WithFields("email", li.Email).Logs("Failed login attempt")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	accessToken, err := auth.GenerateAccessToken(user.ID.String(), user.IsAdmin)
	if err != nil {
		h.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to generate access token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to login",
		})
	}
	refreshToken := auth.GenerateRefreshToken()

	if h.Redis != nil {
		if err := h.Redis.Set(c.Context(), "refresh:"+refreshToken, user.ID.String(), 7*24*time.Hour).Err(); err != nil {
			h.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to store refresh token")
		}
	}

	c.Cookie(&fiber.Cookie{Name: "access_token", Value: accessToken, HTTPOnly: true, SameSite: "Lax", Expires: time.Now().Add(15 * time.Minute)})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: refreshToken, HTTPOnly: true, SameSite: "Lax", Expires: time.Now().Add(7 * 24 * time.Hour)})

	user.UpdateLastSeen(c.Context(), h.Redis, h.DB)

	return c.JSON(fiber.Map{
		"message":      "Login successful",
		"access_token": accessToken,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// Logout blacklists the current access token and drops the refresh token.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if h.Redis != nil {
		if token, ok := c.Locals("access_token").(string); ok && token != "" {
			if err := h.Redis.Set(c.Context(), "blacklist:access:"+token, "1", 15*time.Minute).Err(); err != nil {
				h.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to blacklist access token")
			}
		}
		if refresh := c.Cookies("refresh_token"); refresh != "" {
			h.Redis.Del(c.Context(), "refresh:"+refresh)
		}
	}

	c.ClearCookie("access_token", "refresh_token")
	return c.JSON(fiber.Map{"message": "Logged out"})
}
