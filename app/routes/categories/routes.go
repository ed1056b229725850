package categories

import (
	"github.com/gofiber/fiber/v2"

	"github.com/twincie/schoolpay/app/config"
	"github.com/twincie/schoolpay/app/routes/auth"
)

// SetupCategoriesRoutes sets up the categories API routes
func SetupCategoriesRoutes(app *fiber.App) {
	categoriesAPI := app.Group("/api/categories")
	categoriesAPI.Use(auth.AuthMiddleware)

	categoriesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetCategoriesAPI(c, config.GetDB())
	})

	categoriesAPI.Get("/active", func(c *fiber.Ctx) error {
		return GetActiveCategoriesAPI(c, config.GetDB())
	})

	categoriesAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateCategoryAPI(c, config.GetDB())
	})

	categoriesAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateCategoryAPI(c, config.GetDB())
	})

	categoriesAPI.Patch("/:id/toggle-status", func(c *fiber.Ctx) error {
		return ToggleCategoryStatusAPI(c, config.GetDB())
	})

	categoriesAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteCategoryAPI(c, config.GetDB())
	})
}
