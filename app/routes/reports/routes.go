package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/twincie/schoolpay/app/config"
	"github.com/twincie/schoolpay/app/routes/auth"
)

// SetupReportsRoutes sets up the reports API routes
func SetupReportsRoutes(app *fiber.App) {
	reportsAPI := app.Group("/api/reports")
	reportsAPI.Use(auth.AuthMiddleware)

	reportsAPI.Get("/generate", func(c *fiber.Ctx) error {
		return GenerateReportAPI(c, config.GetDB())
	})

	reportsAPI.Post("/upload", func(c *fiber.Ctx) error {
		return UploadPaymentsAPI(c, config.GetDB())
	})

	reportsAPI.Get("/template", DownloadTemplateAPI)
}
