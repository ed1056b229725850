package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/twincie/schoolpay/app/models"
)

// reportSheet is the sheet name used for both export and the import template.
const reportSheet = "Payments"

// reportColumns is the fixed export column order. Downstream automation keys
// on column position, so the order is part of the external contract.
var reportColumns = []string{
	"id", "payment_date", "student_id", "first_name", "last_name",
	"class", "category_name", "amount", "payment_method", "reference", "notes",
}

// templateColumns are the headers the import path expects, in the order the
// blank template presents them.
var templateColumns = []string{
	"studentId", "categoryName", "amount", "paymentDate", "paymentMethod", "reference",
}

// BuildPaymentReport renders one row per payment in the given order, under a
// single header row. No subtotals or aggregate rows are added.
func BuildPaymentReport(payments []*models.Payment) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(reportColumns))
	for i, col := range reportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, payment := range payments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			payment.ID,
			payment.PaymentDate.Format("2006-01-02"),
			payment.Student.StudentID,
			payment.Student.FirstName,
			payment.Student.LastName,
			payment.Student.Class,
			payment.Category.Name,
			payment.Amount.InexactFloat64(),
			payment.PaymentMethod,
			stringValue(payment.Reference),
			stringValue(payment.Notes),
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// BuildImportTemplate produces a blank sheet carrying only the import headers.
func BuildImportTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}
	header := make([]interface{}, len(templateColumns))
	for i, col := range templateColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return nil, err
	}
	return f, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ImportRow is one data row of an uploaded payment spreadsheet, keyed by the
// header row. Line is the 1-based data row number used in error messages.
type ImportRow struct {
	Line          int
	StudentID     string
	CategoryName  string
	Amount        string
	PaymentDate   string
	PaymentMethod string
	Reference     string
}

// ParseImportRows reads the first sheet of the uploaded workbook into rows
// keyed by column header. Cells under unknown headers are ignored.
func ParseImportRows(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		index[strings.TrimSpace(header)] = i
	}

	cell := func(row []string, header string) string {
		i, ok := index[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var imports []ImportRow
	for i, row := range rows[1:] {
		imports = append(imports, ImportRow{
			Line:          i + 1,
			StudentID:     cell(row, "studentId"),
			CategoryName:  cell(row, "categoryName"),
			Amount:        cell(row, "amount"),
			PaymentDate:   cell(row, "paymentDate"),
			PaymentMethod: cell(row, "paymentMethod"),
			Reference:     cell(row, "reference"),
		})
	}
	return imports, nil
}

// ImportResult summarizes a batch import. Errors holds one row-indexed
// message per failed row.
type ImportResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// PaymentImporter folds import rows into persisted payments. The resolve and
// save steps are injected so the loop stays independent of the store.
type PaymentImporter struct {
	FindStudent  func(studentID string) (*models.Student, error)
	FindCategory func(name string) (*models.Category, error)
	Save         func(payment *models.Payment) error
}

// Import processes every row in order. A failed row increments the error
// count and records a message; it never aborts the batch. There is no
// enclosing transaction, partial application is expected.
func (imp PaymentImporter) Import(rows []ImportRow) ImportResult {
	result := ImportResult{Errors: []string{}}
	for _, row := range rows {
		if err := imp.importRow(row); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.Line, err))
			continue
		}
		result.SuccessCount++
	}
	return result
}

func (imp PaymentImporter) importRow(row ImportRow) error {
	student, err := imp.FindStudent(row.StudentID)
	if err != nil {
		return fmt.Errorf("Student with ID %s not found", row.StudentID)
	}

	category, err := imp.FindCategory(row.CategoryName)
	if err != nil {
		return fmt.Errorf("Category %q not found", row.CategoryName)
	}

	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q", row.Amount)
	}

	date, err := parseImportDate(row.PaymentDate)
	if err != nil {
		return err
	}

	method := row.PaymentMethod
	if method == "" {
		method = "Cash"
	}

	payment := &models.Payment{
		StudentID:     student.ID,
		CategoryID:    category.ID,
		Amount:        amount,
		PaymentDate:   date,
		PaymentMethod: method,
	}
	if row.Reference != "" {
		reference := row.Reference
		payment.Reference = &reference
	}
	return imp.Save(payment)
}

// importDateLayouts covers ISO dates plus the formats excelize renders for
// styled date cells.
var importDateLayouts = []string{
	"2006-01-02",
	"1/2/06",
	"1-2-06",
	"1/2/2006",
	time.RFC3339,
}

func parseImportDate(value string) (time.Time, error) {
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid payment date %q", value)
}
