package categories

import (
	"database/sql"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twincie/schoolpay/app/database"
	"github.com/twincie/schoolpay/app/models"
	"github.com/twincie/schoolpay/app/services"
	"github.com/twincie/schoolpay/app/utils"
)

type CreateCategoryRequest struct {
	Name        string           `json:"name" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description *string          `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string          `json:"name"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

// GetCategoriesAPI returns all non-deleted categories with their derived
// collection figures.
func GetCategoriesAPI(c *fiber.Ctx, db *sql.DB) error {
	categories, err := database.GetCategories(db)
	if err != nil {
		log.Printf("Error retrieving categories: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve categories")
	}

	for _, category := range categories {
		category.CollectionRate = services.CollectionRate(category.Amount, category.StudentsCount, category.TotalCollected)
	}

	return utils.SuccessResponse(c, "Categories retrieved successfully", categories)
}

func GetActiveCategoriesAPI(c *fiber.Ctx, db *sql.DB) error {
	categories, err := database.GetActiveCategories(db)
	if err != nil {
		log.Printf("Error retrieving active categories: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve active categories")
	}
	return utils.SuccessResponse(c, "Active categories retrieved successfully", categories)
}

func CreateCategoryAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.Validate(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Name and amount are required")
	}
	if req.Amount.IsNegative() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Amount must not be negative")
	}

	category := &models.Category{
		Name:        req.Name,
		Amount:      *req.Amount,
		Description: req.Description,
	}
	if err := database.CreateCategory(db, category); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Category with this name already exists")
		}
		log.Printf("Error creating category: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create category")
	}

	return utils.SuccessResponseWithCode(c, fiber.StatusCreated, "Category created successfully", category)
}

func UpdateCategoryAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var req UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == nil && req.Amount == nil && req.Description == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "At least one field to update is required")
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Amount must not be negative")
	}

	update := database.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Amount != nil {
		update.Amount = decimal.NewNullDecimal(*req.Amount)
	}

	category, err := database.UpdateCategory(db, id, update)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
		}
		if errors.Is(err, database.ErrConflict) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Category with this name already exists")
		}
		log.Printf("Error updating category %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update category")
	}

	return utils.SuccessResponse(c, "Category updated successfully", category)
}

func ToggleCategoryStatusAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	category, err := database.ToggleCategoryStatus(db, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
		}
		log.Printf("Error toggling category %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to toggle category")
	}

	return utils.SuccessResponse(c, "Category toggled successfully", category)
}

func DeleteCategoryAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	if err := database.SoftDeleteCategory(db, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
		}
		log.Printf("Error deleting category %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete category")
	}

	return utils.SuccessResponse(c, "Category deleted successfully", nil)
}
