package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var Validate = validator.New()

// ValidationError traduce errores de validator.v10 a la forma estándar 422.
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Entrada inválida")
	}

	errorsMap := make(map[string][]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = append(errorsMap[fieldErr.Field()], fieldErr.Tag())
	}
	return JsonValidationError(c, errorsMap)
}
