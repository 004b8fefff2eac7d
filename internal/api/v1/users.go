package v1

import (
	"github.com/gofiber/fiber/v2"
	models "github.com/sipcircle/sipcircle/internal/models/user"
	"github.com/sipcircle/sipcircle/pkg/utils"
)

// GetUser returns a user's public profile with follower counts.
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	user, err := models.GetUserByID(c.Context(), h.Redis, h.DB, id)
	if err != nil {
		return utils.HandleError(c, err)
	}

	followers, err := h.Relationship.CountFollowers(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":      user.Public(),
		"followers": followers,
	})
}

// FollowUser creates a follow edge from the caller to :id.
func (h *Handlers) FollowUser(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}
	target, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	msg, err := h.Relationship.Follow(c.Context(), actor, target)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c).WithMessage(msg).Send()
}

// UnfollowUser deletes the follow edge from the caller to :id.
func (h *Handlers) UnfollowUser(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}
	target, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	msg, err := h.Relationship.Unfollow(c.Context(), actor, target)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c).WithMessage(msg).Send()
}

// CheckFollowing reports whether the caller follows :id.
func (h *Handlers) CheckFollowing(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}
	target, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	following, err := h.Relationship.IsFollowing(c.Context(), actor, target)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}

// ListFollowers returns the public profiles following :id, newest first.
func (h *Handlers) ListFollowers(c *fiber.Ctx) error {
	target, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	page, limit := pageQuery(c)

	profiles, pagination, err := h.Relationship.ListFollowers(c.Context(), target, page, limit)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"items": profiles, "pagination": pagination})
}

// ListFollowing returns the public profiles :id follows, newest first.
func (h *Handlers) ListFollowing(c *fiber.Ctx) error {
	source, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	page, limit := pageQuery(c)

	profiles, pagination, err := h.Relationship.ListFollowing(c.Context(), source, page, limit)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"items": profiles, "pagination": pagination})
}
