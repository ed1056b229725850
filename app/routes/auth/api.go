package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/twincie/schoolpay/app/config"
	"github.com/twincie/schoolpay/app/database"
	"github.com/twincie/schoolpay/app/utils"
)

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := utils.Validate(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email and password are required")
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Database error")
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := GenerateJWT(user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	// Also set the token as an HTTP-only cookie for browser clients.
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return utils.SuccessResponse(c, "Login successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return utils.SuccessResponse(c, "Logged out", nil)
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := utils.Validate(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Current and new password are required; new password must be at least 8 characters")
	}

	userID := c.Locals("user_id").(string)
	user, err := database.GetUserByID(config.GetDB(), userID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Database error")
	}

	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Current password is incorrect")
	}

	hashedPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	if err := database.UpdateUserPassword(config.GetDB(), userID, hashedPassword); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return utils.SuccessResponse(c, "Password changed successfully", nil)
}
