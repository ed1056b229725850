package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Validate runs struct validation on a parsed request body.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// SuccessResponse writes the standard envelope with status 200.
func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessResponseWithCode(c, fiber.StatusOK, message, data)
}

// SuccessResponseWithCode writes the standard envelope with a custom code,
// e.g. 201 for created resources.
func SuccessResponseWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// ErrorResponse writes the standard error envelope.
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}
