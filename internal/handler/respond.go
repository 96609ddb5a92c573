package handler

import (
	"errors"
	"net/http"

	"vendshop/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail maps a service error onto the response. Unexpected errors become a
// generic 500 so internal detail never leaks.
func fail(c *fiber.Ctx, err error) error {
	status := service.HTTPStatus(err)
	message := "Internal Server Error"
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	} else if status != http.StatusInternalServerError {
		message = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// currentUserID reads the authenticated user id set by RequireAuth
func currentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("user_id").(uuid.UUID)
	return id
}

func currentUserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("user_email").(string)
	return email
}

// parseIDParam parses the :id route parameter as a UUID
func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
