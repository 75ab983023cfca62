package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromLocals lee el user_id que dejó el middleware de auth.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Missing user ID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid user ID")
	}
	return id, nil
}

// GetUserRoleFromLocals lee el rol que dejó el middleware de auth.
func GetUserRoleFromLocals(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}

// IsAdmin reporta si el request viene de un administrador.
func IsAdmin(c *fiber.Ctx) bool {
	return GetUserRoleFromLocals(c) == "admin"
}
