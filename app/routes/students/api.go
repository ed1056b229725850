package students

import (
	"database/sql"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/twincie/schoolpay/app/database"
	"github.com/twincie/schoolpay/app/models"
	"github.com/twincie/schoolpay/app/services"
	"github.com/twincie/schoolpay/app/utils"
)

type CreateStudentRequest struct {
	FirstName  string   `json:"first_name" validate:"required"`
	LastName   string   `json:"last_name" validate:"required"`
	StudentID  string   `json:"student_id" validate:"required"`
	Class      string   `json:"class" validate:"required"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Categories []string `json:"categories"`
}

type UpdateStudentRequest struct {
	FirstName  *string  `json:"first_name"`
	LastName   *string  `json:"last_name"`
	StudentID  *string  `json:"student_id"`
	Class      *string  `json:"class"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Categories []string `json:"categories"`
}

// GetStudentsAPI returns all non-deleted students with their assigned
// categories, payment history and the derived fee position.
func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	students, err := database.GetStudentsWithDetails(db)
	if err != nil {
		log.Printf("Error retrieving students: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve students")
	}

	for _, student := range students {
		services.AttachSummary(student)
	}

	return utils.SuccessResponse(c, "Students retrieved successfully", students)
}

// GetStudentsStatsAPI returns the share of students per payment-status
// bucket. Percentages are rounded independently and may not sum to 100.
func GetStudentsStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	students, err := database.GetStudentsWithDetails(db)
	if err != nil {
		log.Printf("Error retrieving students for stats: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve students statistics")
	}

	breakdown := services.BreakdownByStatus(students)
	return utils.SuccessResponse(c, "Students statistics retrieved successfully", breakdown)
}

func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.Validate(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "First name, last name, student ID, and class are required")
	}
	for _, categoryID := range req.Categories {
		if _, err := uuid.Parse(categoryID); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
		}
	}

	student := &models.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		StudentID: req.StudentID,
		Class:     req.Class,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := database.CreateStudent(db, student, req.Categories); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Student with this ID already exists")
		}
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "One or more categories not found")
		}
		log.Printf("Error creating student: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create student")
	}

	return utils.SuccessResponseWithCode(c, fiber.StatusCreated, "Student created successfully", student)
}

func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.FirstName == nil && req.LastName == nil && req.StudentID == nil &&
		req.Class == nil && req.Email == nil && req.Phone == nil && req.Categories == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "At least one field to update is required")
	}
	for _, categoryID := range req.Categories {
		if _, err := uuid.Parse(categoryID); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
		}
	}

	update := database.StudentUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		StudentID:  req.StudentID,
		Class:      req.Class,
		Email:      req.Email,
		Phone:      req.Phone,
		Categories: req.Categories,
	}

	student, err := database.UpdateStudent(db, id, update)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
		}
		if errors.Is(err, database.ErrConflict) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Student with this ID already exists")
		}
		log.Printf("Error updating student %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update student")
	}

	return utils.SuccessResponse(c, "Student updated successfully", student)
}

func DeleteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid student ID")
	}

	if err := database.SoftDeleteStudent(db, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Student not found")
		}
		log.Printf("Error deleting student %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete student")
	}

	return utils.SuccessResponse(c, "Student deleted successfully", nil)
}
