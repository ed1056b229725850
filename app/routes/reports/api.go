package reports

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/twincie/schoolpay/app/database"
	"github.com/twincie/schoolpay/app/models"
	"github.com/twincie/schoolpay/app/services"
	"github.com/twincie/schoolpay/app/utils"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GenerateReportAPI streams the filtered payment list as a spreadsheet. The
// class parameter filters on the student's class string after the query, the
// remaining filters are applied server-side.
func GenerateReportAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.PaymentFilters{
		DateFrom:   c.Query("dateFrom"),
		DateTo:     c.Query("dateTo"),
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
	if filters.CategoryID != "" {
		if _, err := uuid.Parse(filters.CategoryID); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
		}
	}

	payments, err := database.GetPayments(db, filters)
	if err != nil {
		log.Printf("Error generating report: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate report")
	}

	if class := c.Query("class"); class != "" {
		filtered := payments[:0]
		for _, payment := range payments {
			if payment.Student.Class == class {
				filtered = append(filtered, payment)
			}
		}
		payments = filtered
	}

	f, err := services.BuildPaymentReport(payments)
	if err != nil {
		log.Printf("Error building report workbook: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate report")
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Error writing report workbook: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate report")
	}

	c.Set(fiber.HeaderContentType, excelContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=payments_report.xlsx")
	return c.Send(buf.Bytes())
}

// UploadPaymentsAPI imports payments from an uploaded spreadsheet. Rows are
// processed one by one; a failed row is recorded and skipped, never aborting
// the batch.
func UploadPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No file uploaded")
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to process uploaded file")
	}
	defer file.Close()

	rows, err := services.ParseImportRows(file)
	if err != nil {
		log.Printf("Error parsing uploaded file: %v", err)
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to process uploaded file")
	}

	importer := services.PaymentImporter{
		FindStudent: func(studentID string) (*models.Student, error) {
			return database.GetStudentByStudentID(db, studentID)
		},
		FindCategory: func(name string) (*models.Category, error) {
			return database.GetCategoryByName(db, name)
		},
		Save: func(payment *models.Payment) error {
			return database.CreatePayment(db, payment)
		},
	}
	result := importer.Import(rows)

	message := fmt.Sprintf("Upload completed. %d payments imported, %d errors.",
		result.SuccessCount, result.ErrorCount)
	return utils.SuccessResponse(c, message, result)
}

// DownloadTemplateAPI serves a blank spreadsheet carrying only the import
// column headers.
func DownloadTemplateAPI(c *fiber.Ctx) error {
	f, err := services.BuildImportTemplate()
	if err != nil {
		log.Printf("Error building template workbook: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template")
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Error writing template workbook: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template")
	}

	c.Set(fiber.HeaderContentType, excelContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=payments_template.xlsx")
	return c.Send(buf.Bytes())
}
