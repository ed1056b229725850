package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/twincie/schoolpay/app/models"
)

// minPaymentDate is the sentinel lower bound used when no dateFrom filter is
// supplied.
const minPaymentDate = "1900-01-01"

// PaymentFilters represents filtering options for payments. All supplied
// filters are combined with AND; the date range is inclusive on both ends.
type PaymentFilters struct {
	DateFrom   string
	DateTo     string
	StudentID  string
	CategoryID string
}

// DateRange resolves the filter bounds: an open start falls back to the
// sentinel minimum date and an open end defaults to today.
func (f PaymentFilters) DateRange(now time.Time) (string, string) {
	from := f.DateFrom
	if from == "" {
		from = minPaymentDate
	}
	to := f.DateTo
	if to == "" {
		to = now.Format("2006-01-02")
	}
	return from, to
}

// GetPayments returns payments matching the filters, each joined with its
// student and category, ordered by payment date descending.
func GetPayments(db *sql.DB, filters PaymentFilters) ([]*models.Payment, error) {
	from, to := filters.DateRange(time.Now())

	query := `SELECT p.id, p.student_id, p.category_id, p.amount, p.payment_date,
			         p.payment_method, p.reference, p.notes, p.created_at, p.updated_at,
			         s.first_name, s.last_name, s.student_id, s.class,
			         c.name, c.amount
			  FROM payments p
			  JOIN students s ON s.id = p.student_id
			  JOIN categories c ON c.id = p.category_id
			  WHERE p.payment_date BETWEEN $1 AND $2`
	args := []interface{}{from, to}

	if filters.StudentID != "" {
		args = append(args, filters.StudentID)
		query += fmt.Sprintf(" AND p.student_id = $%d", len(args))
	}
	if filters.CategoryID != "" {
		args = append(args, filters.CategoryID)
		query += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}
	query += " ORDER BY p.payment_date DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{
			Student:  &models.Student{},
			Category: &models.Category{},
		}
		err := rows.Scan(
			&payment.ID, &payment.StudentID, &payment.CategoryID, &payment.Amount,
			&payment.PaymentDate, &payment.PaymentMethod, &payment.Reference, &payment.Notes,
			&payment.CreatedAt, &payment.UpdatedAt,
			&payment.Student.FirstName, &payment.Student.LastName,
			&payment.Student.StudentID, &payment.Student.Class,
			&payment.Category.Name, &payment.Category.Amount,
		)
		if err != nil {
			return nil, err
		}
		payment.Student.ID = payment.StudentID
		payment.Category.ID = payment.CategoryID
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func GetPaymentByID(db *sql.DB, id string) (*models.Payment, error) {
	payment := &models.Payment{
		Student:  &models.Student{},
		Category: &models.Category{},
	}
	query := `SELECT p.id, p.student_id, p.category_id, p.amount, p.payment_date,
			         p.payment_method, p.reference, p.notes, p.created_at, p.updated_at,
			         s.first_name, s.last_name, s.student_id, s.class,
			         c.name, c.amount
			  FROM payments p
			  JOIN students s ON s.id = p.student_id
			  JOIN categories c ON c.id = p.category_id
			  WHERE p.id = $1`

	err := db.QueryRow(query, id).Scan(
		&payment.ID, &payment.StudentID, &payment.CategoryID, &payment.Amount,
		&payment.PaymentDate, &payment.PaymentMethod, &payment.Reference, &payment.Notes,
		&payment.CreatedAt, &payment.UpdatedAt,
		&payment.Student.FirstName, &payment.Student.LastName,
		&payment.Student.StudentID, &payment.Student.Class,
		&payment.Category.Name, &payment.Category.Amount,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	payment.Student.ID = payment.StudentID
	payment.Category.ID = payment.CategoryID
	return payment, nil
}

// CreatePayment verifies both parents exist and inserts the payment. The
// existence checks intentionally ignore the soft-delete flags: a payment can
// still be recorded against a flagged student or category because the rows
// physically remain.
func CreatePayment(db *sql.DB, payment *models.Payment) error {
	var exists bool
	if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`, payment.StudentID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("student: %w", ErrNotFound)
	}
	if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, payment.CategoryID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("category: %w", ErrNotFound)
	}

	query := `INSERT INTO payments (student_id, category_id, amount, payment_date, payment_method, reference, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query,
		payment.StudentID, payment.CategoryID, payment.Amount, payment.PaymentDate,
		payment.PaymentMethod, payment.Reference, payment.Notes,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

// PaymentUpdate carries optional fields for a partial payment update.
type PaymentUpdate struct {
	Amount        decimal.NullDecimal
	PaymentDate   *time.Time
	PaymentMethod *string
	Reference     *string
	Notes         *string
}

func UpdatePayment(db *sql.DB, id string, update PaymentUpdate) (*models.Payment, error) {
	query := `UPDATE payments
			  SET amount = COALESCE($2, amount),
			      payment_date = COALESCE($3, payment_date),
			      payment_method = COALESCE($4, payment_method),
			      reference = COALESCE($5, reference),
			      notes = COALESCE($6, notes),
			      updated_at = NOW()
			  WHERE id = $1`
	result, err := db.Exec(query, id,
		update.Amount, update.PaymentDate, update.PaymentMethod,
		update.Reference, update.Notes,
	)
	if err != nil {
		return nil, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return GetPaymentByID(db, id)
}

// DeletePayment removes the row permanently; payments have no soft delete.
func DeletePayment(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
