package payments

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twincie/schoolpay/app/database"
	"github.com/twincie/schoolpay/app/models"
	"github.com/twincie/schoolpay/app/utils"
)

type CreatePaymentRequest struct {
	StudentID     string           `json:"student_id" validate:"required,uuid"`
	CategoryID    string           `json:"category_id" validate:"required,uuid"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate   string           `json:"payment_date" validate:"required"`
	PaymentMethod string           `json:"payment_method" validate:"required"`
	Reference     *string          `json:"reference"`
	Notes         *string          `json:"notes"`
}

type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	PaymentDate   *string          `json:"payment_date"`
	PaymentMethod *string          `json:"payment_method"`
	Reference     *string          `json:"reference"`
	Notes         *string          `json:"notes"`
}

// GetPaymentsAPI returns payments matching the optional dateFrom, dateTo,
// studentId and categoryId query filters, joined with student and category.
func GetPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.PaymentFilters{
		DateFrom:   c.Query("dateFrom"),
		DateTo:     c.Query("dateTo"),
		StudentID:  c.Query("studentId"),
		CategoryID: c.Query("categoryId"),
	}
	for _, date := range []string{filters.DateFrom, filters.DateTo} {
		if date == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dates must be in YYYY-MM-DD format")
		}
	}
	for _, id := range []string{filters.StudentID, filters.CategoryID} {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid filter ID")
		}
	}

	payments, err := database.GetPayments(db, filters)
	if err != nil {
		log.Printf("Error retrieving payments: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve payments")
	}

	return utils.SuccessResponse(c, "Payments retrieved successfully", payments)
}

func CreatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.Validate(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Student ID, category ID, amount, payment date, and payment method are required")
	}
	if !req.Amount.IsPositive() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Amount must be positive")
	}
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Payment date must be in YYYY-MM-DD format")
	}

	payment := &models.Payment{
		StudentID:     req.StudentID,
		CategoryID:    req.CategoryID,
		Amount:        *req.Amount,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		Reference:     req.Reference,
		Notes:         req.Notes,
	}
	if err := database.CreatePayment(db, payment); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Student or category not found")
		}
		log.Printf("Error creating payment: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create payment")
	}

	return utils.SuccessResponseWithCode(c, fiber.StatusCreated, "Payment created successfully", payment)
}

func UpdatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid payment ID")
	}

	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Amount == nil && req.PaymentDate == nil && req.PaymentMethod == nil &&
		req.Reference == nil && req.Notes == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "At least one field to update is required")
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Amount must be positive")
	}

	update := database.PaymentUpdate{
		PaymentMethod: req.PaymentMethod,
		Reference:     req.Reference,
		Notes:         req.Notes,
	}
	if req.Amount != nil {
		update.Amount = decimal.NewNullDecimal(*req.Amount)
	}
	if req.PaymentDate != nil {
		paymentDate, err := time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Payment date must be in YYYY-MM-DD format")
		}
		update.PaymentDate = &paymentDate
	}

	payment, err := database.UpdatePayment(db, id, update)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Payment not found")
		}
		log.Printf("Error updating payment %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update payment")
	}

	return utils.SuccessResponse(c, "Payment updated successfully", payment)
}

func DeletePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid payment ID")
	}

	if err := database.DeletePayment(db, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Payment not found")
		}
		log.Printf("Error deleting payment %s: %v", id, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete payment")
	}

	return utils.SuccessResponse(c, "Payment deleted successfully", nil)
}
