package classes

import (
	"database/sql"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/twincie/schoolpay/app/database"
	"github.com/twincie/schoolpay/app/models"
	"github.com/twincie/schoolpay/app/utils"
)

type CreateClassRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type UpdateClassRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func GetClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	classes, err := database.GetClasses(db)
	if err != nil {
		log.Printf("Error retrieving classes: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve classes")
	}
	return utils.SuccessResponse(c, "Classes retrieved successfully", classes)
}

func CreateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.Validate(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Name is required")
	}

	class := &models.Class{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := database.CreateClass(db, class); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Class with this name already exists")
		}
		log.Printf("Error creating class: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create class")
	}

	return utils.SuccessResponseWithCode(c, fiber.StatusCreated, "Class created successfully", class)
}

func UpdateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid class ID")
	}

	var req UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == nil && req.Description == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "At least one field to update is required")
	}

	class, err := database.UpdateClass(db, id, database.ClassUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Class not found")
		}
		if errors.Is(err, database.ErrConflict) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Class with this name already exists")
		}
		log.Printf("Error updating class %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update class")
	}

	return utils.SuccessResponse(c, "Class updated successfully", class)
}

func ToggleClassStatusAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid class ID")
	}

	class, err := database.ToggleClassStatus(db, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Class not found")
		}
		log.Printf("Error toggling class %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to toggle class")
	}

	return utils.SuccessResponse(c, "Class toggled successfully", class)
}

// DeleteClassAPI removes the class permanently. Students keep their class
// string, nothing else is affected.
func DeleteClassAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid class ID")
	}

	if err := database.DeleteClass(db, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Class not found")
		}
		log.Printf("Error deleting class %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete class")
	}

	return utils.SuccessResponse(c, "Class deleted successfully", nil)
}
