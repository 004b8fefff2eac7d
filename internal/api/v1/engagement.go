package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sipcircle/sipcircle/pkg/utils"
)

// LikeReview creates a like edge from the caller to review :id.
func (h *Handlers) LikeReview(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}
	reviewID, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	msg, err := h.Engagement.Like(c.Context(), actor, reviewID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c).WithMessage(msg).Send()
}

// UnlikeReview deletes the caller's like edge on review :id.
func (h *Handlers) UnlikeReview(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}
	reviewID, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	msg, err := h.Engagement.Unlike(c.Context(), actor, reviewID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c).WithMessage(msg).Send()
}

// CheckLiked reports whether the caller liked review :id.
func (h *Handlers) CheckLiked(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}
	reviewID, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	liked, err := h.Engagement.HasLiked(c.Context(), actor, reviewID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// CreateComment posts a comment on review :id authored by the caller.
func (h *Handlers) CreateComment(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}
	reviewID, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	type CommentInput struct {
		Content string `json:"content"`
	}
	ci := new(CommentInput)
	if err := utils.StrictBodyParser(c, &ci); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	comment, err := h.Engagement.CreateComment(c.Context(), actor, reviewID, ci.Content)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// ListComments returns review :id's comments oldest first.
func (h *Handlers) ListComments(c *fiber.Ctx) error {
	reviewID, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	page, limit := pageQuery(c)

	comments, pagination, err := h.Engagement.ListComments(c.Context(), reviewID, page, limit)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"items": comments, "pagination": pagination})
}
