package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/twincie/schoolpay/app/utils"
)

func SetupAuthRoutes(app *fiber.App) {
	authAPI := app.Group("/api/auth")

	// Public routes
	authAPI.Post("/login", LoginAPI)
	authAPI.Post("/logout", LogoutAPI)

	// Protected routes
	authAPI.Use(AuthMiddleware)
	authAPI.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the bearer token and sets user context. The token
// is read from the Authorization header first, then from the jwt_token cookie
// for browser clients.
func AuthMiddleware(c *fiber.Ctx) error {
	var tokenString string

	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		tokenString = strings.TrimPrefix(auth, "Bearer ")
	}
	if tokenString == "" {
		tokenString = c.Cookies("jwt_token")
	}

	if tokenString == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "No token found")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token")
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_first_name", claims.FirstName)
	c.Locals("user_last_name", claims.LastName)

	return c.Next()
}
