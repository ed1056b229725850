package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/twincie/schoolpay/app/models"
)

func strptr(s string) *string { return &s }

func samplePayments() []*models.Payment {
	return []*models.Payment{
		{
			ID:            "a1b2",
			Amount:        decimal.NewFromFloat(150.5),
			PaymentDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			PaymentMethod: "cash",
			Reference:     strptr("RCPT-001"),
			Notes:         strptr("first installment"),
			Student: &models.Student{
				StudentID: "STU-001", FirstName: "Amina", LastName: "Okello", Class: "P4",
			},
			Category: &models.Category{Name: "Tuition"},
		},
		{
			ID:            "c3d4",
			Amount:        decimal.NewFromInt(500),
			PaymentDate:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			PaymentMethod: "bank_transfer",
			Student: &models.Student{
				StudentID: "STU-002", FirstName: "Brian", LastName: "Ssali", Class: "P5",
			},
			Category: &models.Category{Name: "Library"},
		},
	}
}

func TestBuildPaymentReport(t *testing.T) {
	payments := samplePayments()

	f, err := BuildPaymentReport(payments)
	if err != nil {
		t.Fatalf("BuildPaymentReport: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	reopened, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reopened.Close()

	rows, err := reopened.GetRows(reportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}

	// One header row plus one row per payment.
	if len(rows) != len(payments)+1 {
		t.Fatalf("row count = %d, want %d", len(rows), len(payments)+1)
	}

	for i, want := range reportColumns {
		if rows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}

	first := rows[1]
	want := []string{"a1b2", "2025-03-10", "STU-001", "Amina", "Okello", "P4", "Tuition", "150.5", "cash", "RCPT-001", "first installment"}
	for i, cell := range want {
		if first[i] != cell {
			t.Errorf("row 1 col %d = %q, want %q", i, first[i], cell)
		}
	}

	// Row order follows the input slice, no re-sorting.
	if rows[2][0] != "c3d4" {
		t.Errorf("row 2 id = %q, want c3d4", rows[2][0])
	}
}

func TestBuildImportTemplate(t *testing.T) {
	f, err := BuildImportTemplate()
	if err != nil {
		t.Fatalf("BuildImportTemplate: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	reopened, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reopened.Close()

	rows, err := reopened.GetRows(reportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("template has %d rows, want only the header", len(rows))
	}
	for i, want := range templateColumns {
		if rows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}
}

func buildUpload(t *testing.T, headers []string, dataRows [][]interface{}) *strings.Reader {
	t.Helper()
	f := excelize.NewFile()
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	for i, row := range dataRows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return strings.NewReader(buf.String())
}

func TestParseImportRows(t *testing.T) {
	// Headers deliberately shuffled; parsing is keyed by header name.
	upload := buildUpload(t,
		[]string{"amount", "studentId", "categoryName", "paymentDate", "paymentMethod", "reference"},
		[][]interface{}{
			{"1500", "STU-001", "Tuition", "2025-03-10", "cash", "RCPT-1"},
			{"200", "STU-002", "Library", "2025-03-11", "", ""},
		})

	rows, err := ParseImportRows(upload)
	if err != nil {
		t.Fatalf("ParseImportRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("parsed %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Line != 1 || first.StudentID != "STU-001" || first.CategoryName != "Tuition" ||
		first.Amount != "1500" || first.PaymentDate != "2025-03-10" ||
		first.PaymentMethod != "cash" || first.Reference != "RCPT-1" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if rows[1].Line != 2 || rows[1].PaymentMethod != "" {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}

func testImporter(saved *[]*models.Payment, saveErr error) PaymentImporter {
	students := map[string]*models.Student{
		"STU-001": {ID: "uuid-student-1", StudentID: "STU-001"},
		"STU-002": {ID: "uuid-student-2", StudentID: "STU-002"},
	}
	categories := map[string]*models.Category{
		"Tuition": {ID: "uuid-category-1", Name: "Tuition"},
	}
	return PaymentImporter{
		FindStudent: func(studentID string) (*models.Student, error) {
			if s, ok := students[studentID]; ok {
				return s, nil
			}
			return nil, errors.New("no rows")
		},
		FindCategory: func(name string) (*models.Category, error) {
			if c, ok := categories[name]; ok {
				return c, nil
			}
			return nil, errors.New("no rows")
		},
		Save: func(p *models.Payment) error {
			if saveErr != nil {
				return saveErr
			}
			*saved = append(*saved, p)
			return nil
		},
	}
}

func TestPaymentImporter_Import(t *testing.T) {
	t.Run("valid rows are persisted with resolved keys", func(t *testing.T) {
		var saved []*models.Payment
		imp := testImporter(&saved, nil)

		result := imp.Import([]ImportRow{
			{Line: 1, StudentID: "STU-001", CategoryName: "Tuition", Amount: "1500", PaymentDate: "2025-03-10", PaymentMethod: "cash"},
		})

		if result.SuccessCount != 1 || result.ErrorCount != 0 {
			t.Fatalf("result = %+v, want 1 success", result)
		}
		if len(saved) != 1 {
			t.Fatalf("saved %d payments, want 1", len(saved))
		}
		p := saved[0]
		if p.StudentID != "uuid-student-1" || p.CategoryID != "uuid-category-1" {
			t.Errorf("payment keys = %s/%s, want resolved internal IDs", p.StudentID, p.CategoryID)
		}
		if !p.Amount.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("amount = %s, want 1500", p.Amount)
		}
		if p.PaymentDate.Format("2006-01-02") != "2025-03-10" {
			t.Errorf("date = %s, want 2025-03-10", p.PaymentDate)
		}
	})

	t.Run("blank method defaults to Cash", func(t *testing.T) {
		var saved []*models.Payment
		imp := testImporter(&saved, nil)

		imp.Import([]ImportRow{
			{Line: 1, StudentID: "STU-001", CategoryName: "Tuition", Amount: "100", PaymentDate: "2025-03-10"},
		})

		if len(saved) != 1 || saved[0].PaymentMethod != "Cash" {
			t.Fatalf("saved = %+v, want method Cash", saved)
		}
	})

	t.Run("unknown student fails the row only", func(t *testing.T) {
		var saved []*models.Payment
		imp := testImporter(&saved, nil)

		result := imp.Import([]ImportRow{
			{Line: 1, StudentID: "STU-404", CategoryName: "Tuition", Amount: "100", PaymentDate: "2025-03-10"},
			{Line: 2, StudentID: "STU-001", CategoryName: "Tuition", Amount: "100", PaymentDate: "2025-03-10"},
		})

		if result.SuccessCount != 1 || result.ErrorCount != 1 {
			t.Fatalf("result = %+v, want 1 success and 1 error", result)
		}
		if want := "Row 1: Student with ID STU-404 not found"; result.Errors[0] != want {
			t.Errorf("error = %q, want %q", result.Errors[0], want)
		}
		if len(saved) != 1 {
			t.Errorf("saved %d payments, want 1", len(saved))
		}
	})

	t.Run("unknown category message quotes the name", func(t *testing.T) {
		var saved []*models.Payment
		imp := testImporter(&saved, nil)

		result := imp.Import([]ImportRow{
			{Line: 1, StudentID: "STU-001", CategoryName: "Books", Amount: "100", PaymentDate: "2025-03-10"},
		})

		if want := `Row 1: Category "Books" not found`; len(result.Errors) != 1 || result.Errors[0] != want {
			t.Errorf("errors = %v, want [%s]", result.Errors, want)
		}
	})

	t.Run("bad amount and bad date are row errors", func(t *testing.T) {
		var saved []*models.Payment
		imp := testImporter(&saved, nil)

		result := imp.Import([]ImportRow{
			{Line: 1, StudentID: "STU-001", CategoryName: "Tuition", Amount: "abc", PaymentDate: "2025-03-10"},
			{Line: 2, StudentID: "STU-001", CategoryName: "Tuition", Amount: "100", PaymentDate: "not-a-date"},
		})

		if result.ErrorCount != 2 || result.SuccessCount != 0 {
			t.Fatalf("result = %+v, want 2 errors", result)
		}
	})

	t.Run("persistence failure is isolated per row", func(t *testing.T) {
		var saved []*models.Payment
		imp := testImporter(&saved, errors.New("insert failed"))

		result := imp.Import([]ImportRow{
			{Line: 1, StudentID: "STU-001", CategoryName: "Tuition", Amount: "100", PaymentDate: "2025-03-10"},
			{Line: 2, StudentID: "STU-002", CategoryName: "Tuition", Amount: "100", PaymentDate: "2025-03-10"},
		})

		if result.ErrorCount != 2 || result.SuccessCount != 0 {
			t.Fatalf("result = %+v, want both rows failed", result)
		}
	})
}
