package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/twincie/schoolpay/app/config"
	"github.com/twincie/schoolpay/app/routes/auth"
)

// SetupClassesRoutes sets up the classes API routes
func SetupClassesRoutes(app *fiber.App) {
	classesAPI := app.Group("/api/classes")
	classesAPI.Use(auth.AuthMiddleware)

	classesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetClassesAPI(c, config.GetDB())
	})

	classesAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateClassAPI(c, config.GetDB())
	})

	classesAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateClassAPI(c, config.GetDB())
	})

	classesAPI.Patch("/:id/toggle-status", func(c *fiber.Ctx) error {
		return ToggleClassStatusAPI(c, config.GetDB())
	})

	classesAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteClassAPI(c, config.GetDB())
	})
}
