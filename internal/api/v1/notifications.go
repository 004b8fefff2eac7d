package v1

import (
	"github.com/gofiber/fiber/v2"
	models "github.com/sipcircle/sipcircle/internal/models/user"
	"github.com/sipcircle/sipcircle/pkg/utils"
)

// ListNotifications returns the caller's notifications, newest first.
// ?unread=true filters to unread only.
func (h *Handlers) ListNotifications(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}
	page, limit := pageQuery(c)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.DB.WithContext(c.Context()).Model(&models.Notification{}).Where("user_id = ?", actor)
	if c.QueryBool("unread") {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.HandleError(c, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to count notifications"))
	}

	var notifications []models.Notification
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&notifications).Error; err != nil {
		return utils.HandleError(c, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to list notifications"))
	}

	return c.JSON(fiber.Map{"items": notifications, "total": total})
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (h *Handlers) MarkNotificationRead(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	result := h.DB.WithContext(c.Context()).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, actor).
		Update("is_read", true)
	if result.Error != nil {
		return utils.HandleError(c, utils.WrapError(result.Error, utils.ErrInternalServerError.Code, "Failed to mark notification read"))
	}
	if result.RowsAffected == 0 {
		return utils.HandleError(c, utils.NewNotFoundError("Notification not found"))
	}
	return c.JSON(fiber.Map{"success": true})
}

// MarkAllNotificationsRead flags every unread notification of the caller.
func (h *Handlers) MarkAllNotificationsRead(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := h.DB.WithContext(c.Context()).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor, false).
		Update("is_read", true).Error; err != nil {
		return utils.HandleError(c, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to mark notifications read"))
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetPreferences returns the caller's notification preferences, defaults if
// never customized.
func (h *Handlers) GetPreferences(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	prefs, err := models.GetNotificationPreferencesByUser(c.Context(), h.Redis, h.DB, actor)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if prefs == nil {
		prefs = &models.NotificationPreferences{
			UserID:    actor,
			OnFollow:  true,
			OnLike:    true,
			OnComment: true,
		}
	}
	return c.JSON(fiber.Map{"preferences": prefs})
}

// UpdatePreferences upserts the caller's notification preferences.
func (h *Handlers) UpdatePreferences(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	type PrefsInput struct {
		OnFollow       bool `json:"on_follow"`
		OnLike         bool `json:"on_like"`
		OnComment      bool `json:"on_comment"`
		EmailOnFollow  bool `json:"email_on_follow"`
		EmailOnLike    bool `json:"email_on_like"`
		EmailOnComment bool `json:"email_on_comment"`
	}
	pi := new(PrefsInput)
	if err := utils.StrictBodyParser(c, &pi); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	prefs, err := models.UpdateNotificationPreferences(c.Context(), h.Redis, h.DB, actor,
		pi.OnFollow, pi.OnLike, pi.OnComment,
		pi.EmailOnFollow, pi.EmailOnLike, pi.EmailOnComment)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"preferences": prefs})
}
