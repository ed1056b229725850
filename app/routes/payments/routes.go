package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/twincie/schoolpay/app/config"
	"github.com/twincie/schoolpay/app/routes/auth"
)

// SetupPaymentsRoutes sets up the payments API routes
func SetupPaymentsRoutes(app *fiber.App) {
	paymentsAPI := app.Group("/api/payments")
	paymentsAPI.Use(auth.AuthMiddleware)

	paymentsAPI.Get("/", func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, config.GetDB())
	})

	paymentsAPI.Post("/", func(c *fiber.Ctx) error {
		return CreatePaymentAPI(c, config.GetDB())
	})

	paymentsAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdatePaymentAPI(c, config.GetDB())
	})

	paymentsAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeletePaymentAPI(c, config.GetDB())
	})
}
