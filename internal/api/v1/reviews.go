package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	reviews "github.com/sipcircle/sipcircle/internal/models/reviews"
	"github.com/sipcircle/sipcircle/pkg/utils"
)

// CreateBeverage adds a catalog entry.
func (h *Handlers) CreateBeverage(c *fiber.Ctx) error {
	type BeverageInput struct {
		Name     string  `json:"name" validate:"required,min=2,max=255"`
		Category string  `json:"category" validate:"required,oneof=wine cocktail spirit beer other"`
		Producer string  `json:"producer" validate:"omitempty,max=255"`
		ABV      float32 `json:"abv" validate:"gte=0,lte=100"`
	}
	bi := new(BeverageInput)
	if err := utils.StrictBodyParser(c, &bi); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}
	if err := h.Validator.Validate(bi); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "details": err})
	}

	beverage, err := reviews.NewBeverage(c.Context(), h.DB, bi.Name, bi.Category, bi.Producer, bi.ABV)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"beverage": beverage})
}

// GetBeverage returns one catalog entry.
func (h *Handlers) GetBeverage(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	beverage, err := reviews.GetBeverage(c.Context(), h.DB, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"beverage": beverage})
}

// ListBeverages lists the catalog, optionally filtered by category.
func (h *Handlers) ListBeverages(c *fiber.Ctx) error {
	page, limit := pageQuery(c)
	category := c.Query("category")
	if category != "" && !utils.Contains([]string{"wine", "cocktail", "spirit", "beer", "other"}, category) {
		return utils.HandleError(c, utils.NewValidationError("Invalid category"))
	}
	items, total, err := reviews.GetBeverages(c.Context(), h.DB, page, limit, category)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "total": total})
}

// CreateReview posts a review authored by the caller.
func (h *Handlers) CreateReview(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	type ReviewInput struct {
		BeverageID string `json:"beverage_id" validate:"required,uuid"`
		Title      string `json:"title" validate:"required,min=2,max=255"`
		Body       string `json:"body" validate:"required,min=10"`
		Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	}
	ri := new(ReviewInput)
	if err := utils.StrictBodyParser(c, &ri); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}
	if err := h.Validator.Validate(ri); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "details": err})
	}

	beverageID, _ := uuid.Parse(ri.BeverageID)
	review, err := reviews.NewReview(c.Context(), h.DB, actor, beverageID, ri.Title, ri.Body, ri.Rating)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": review})
}

// GetReview returns one review with its author, beverage and like count.
func (h *Handlers) GetReview(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	review, err := reviews.GetReview(c.Context(), h.DB, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	likes, err := h.Engagement.LikeCount(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"review": review, "likes": likes})
}

// ListReviews lists reviews newest first, optionally scoped by beverage or author.
func (h *Handlers) ListReviews(c *fiber.Ctx) error {
	page, limit := pageQuery(c)

	beverageID := uuid.Nil
	if raw := c.Query("beverage_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.HandleError(c, utils.NewValidationError("Invalid beverage_id"))
		}
		beverageID = id
	}
	authorID := uuid.Nil
	if raw := c.Query("author_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.HandleError(c, utils.NewValidationError("Invalid author_id"))
		}
		authorID = id
	}

	items, total, err := reviews.GetReviews(c.Context(), h.DB, page, limit, beverageID, authorID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "total": total})
}

// DeleteReview removes the caller's review; admins may remove any. The
// store cascades the review's likes and comments.
func (h *Handlers) DeleteReview(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return utils.HandleError(c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	review, err := reviews.GetReview(c.Context(), h.DB, id)
	if err != nil {
		return utils.HandleError(c, err)
	}

	isAdmin, _ := c.Locals("is_admin").(bool)
	if review.AuthorID != actor && !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not your review"})
	}

	if err := reviews.DeleteReview(c.Context(), h.DB, id); err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Review deleted"})
}
