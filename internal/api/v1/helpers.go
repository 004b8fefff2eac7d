package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sipcircle/sipcircle/pkg/utils"
)

// actorID extracts the authenticated caller's id set by the auth middleware.
func actorID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, utils.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, utils.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}

// paramUUID parses a UUID path parameter.
func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, utils.NewValidationError("Invalid " + name)
	}
	return id, nil
}

func pageQuery(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("limit", 20)
}
