package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/twincie/schoolpay/app/config"
	"github.com/twincie/schoolpay/app/routes/auth"
)

// SetupStudentsRoutes sets up the students API routes
func SetupStudentsRoutes(app *fiber.App) {
	studentsAPI := app.Group("/api/students")
	studentsAPI.Use(auth.AuthMiddleware)

	studentsAPI.Get("/", func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, config.GetDB())
	})

	studentsAPI.Get("/stats", func(c *fiber.Ctx) error {
		return GetStudentsStatsAPI(c, config.GetDB())
	})

	studentsAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateStudentAPI(c, config.GetDB())
	})

	studentsAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateStudentAPI(c, config.GetDB())
	})

	studentsAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteStudentAPI(c, config.GetDB())
	})
}
