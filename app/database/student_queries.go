package database

import (
	"database/sql"

	"github.com/twincie/schoolpay/app/models"
)

// GetStudentsWithDetails returns all non-deleted students with their assigned
// categories and full payment history attached. The relations are loaded in
// two follow-up queries and grouped in memory to avoid row multiplication.
func GetStudentsWithDetails(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT id, first_name, last_name, student_id, class, email, phone,
			         is_deleted, created_at, updated_at
			  FROM students
			  WHERE is_deleted = false
			  ORDER BY first_name ASC, last_name ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	byID := make(map[string]*models.Student)
	for rows.Next() {
		student := &models.Student{}
		err := rows.Scan(
			&student.ID, &student.FirstName, &student.LastName, &student.StudentID,
			&student.Class, &student.Email, &student.Phone,
			&student.IsDeleted, &student.CreatedAt, &student.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
		byID[student.ID] = student
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return students, nil
	}

	if err := attachCategories(db, byID); err != nil {
		return nil, err
	}
	if err := attachPayments(db, byID); err != nil {
		return nil, err
	}
	return students, nil
}

// attachCategories loads the assigned categories for every student in the
// map. Assignment is what matters here, so neither the active nor the
// deletion flag of the category filters the result.
func attachCategories(db *sql.DB, byID map[string]*models.Student) error {
	query := `SELECT sc.student_id, c.id, c.name, c.amount, c.description,
			         c.is_active, c.is_deleted, c.created_at, c.updated_at
			  FROM student_categories sc
			  JOIN categories c ON c.id = sc.category_id
			  ORDER BY c.name ASC`

	rows, err := db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var studentID string
		category := &models.Category{}
		err := rows.Scan(
			&studentID, &category.ID, &category.Name, &category.Amount, &category.Description,
			&category.IsActive, &category.IsDeleted, &category.CreatedAt, &category.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if student, ok := byID[studentID]; ok {
			student.Categories = append(student.Categories, category)
		}
	}
	return rows.Err()
}

func attachPayments(db *sql.DB, byID map[string]*models.Student) error {
	query := `SELECT id, student_id, category_id, amount, payment_date, payment_method,
			         reference, notes, created_at, updated_at
			  FROM payments
			  ORDER BY payment_date DESC`

	rows, err := db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		payment := &models.Payment{}
		err := rows.Scan(
			&payment.ID, &payment.StudentID, &payment.CategoryID, &payment.Amount,
			&payment.PaymentDate, &payment.PaymentMethod,
			&payment.Reference, &payment.Notes, &payment.CreatedAt, &payment.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if student, ok := byID[payment.StudentID]; ok {
			student.Payments = append(student.Payments, payment)
		}
	}
	return rows.Err()
}

func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT id, first_name, last_name, student_id, class, email, phone,
			         is_deleted, created_at, updated_at
			  FROM students WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&student.ID, &student.FirstName, &student.LastName, &student.StudentID,
		&student.Class, &student.Email, &student.Phone,
		&student.IsDeleted, &student.CreatedAt, &student.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudentByStudentID resolves a non-deleted student by the external,
// human-readable identifier. Used by the spreadsheet import path.
func GetStudentByStudentID(db *sql.DB, studentID string) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT id, first_name, last_name, student_id, class, email, phone,
			         is_deleted, created_at, updated_at
			  FROM students WHERE student_id = $1 AND is_deleted = false`

	err := db.QueryRow(query, studentID).Scan(
		&student.ID, &student.FirstName, &student.LastName, &student.StudentID,
		&student.Class, &student.Email, &student.Phone,
		&student.IsDeleted, &student.CreatedAt, &student.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return student, nil
}

// CreateStudent inserts the student and its category assignments in one
// transaction. Every category ID must reference an existing category.
func CreateStudent(db *sql.DB, student *models.Student, categoryIDs []string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO students (first_name, last_name, student_id, class, email, phone)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, is_deleted, created_at, updated_at`
	err = tx.QueryRow(query,
		student.FirstName, student.LastName, student.StudentID,
		student.Class, student.Email, student.Phone,
	).Scan(&student.ID, &student.IsDeleted, &student.CreatedAt, &student.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}

	if err := assignCategories(tx, student.ID, categoryIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// StudentUpdate carries optional fields for a partial student update.
// Categories is nil when assignments should stay as they are; a non-nil
// (possibly empty) slice replaces the whole assignment set.
type StudentUpdate struct {
	FirstName  *string
	LastName   *string
	StudentID  *string
	Class      *string
	Email      *string
	Phone      *string
	Categories []string
}

func UpdateStudent(db *sql.DB, id string, update StudentUpdate) (*models.Student, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE students
			  SET first_name = COALESCE($2, first_name),
			      last_name = COALESCE($3, last_name),
			      student_id = COALESCE($4, student_id),
			      class = COALESCE($5, class),
			      email = COALESCE($6, email),
			      phone = COALESCE($7, phone),
			      updated_at = NOW()
			  WHERE id = $1 AND is_deleted = false`
	result, err := tx.Exec(query, id,
		update.FirstName, update.LastName, update.StudentID,
		update.Class, update.Email, update.Phone,
	)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	if update.Categories != nil {
		if _, err := tx.Exec(`DELETE FROM student_categories WHERE student_id = $1`, id); err != nil {
			return nil, err
		}
		if err := assignCategories(tx, id, update.Categories); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return GetStudentByID(db, id)
}

func assignCategories(tx *sql.Tx, studentID string, categoryIDs []string) error {
	for _, categoryID := range categoryIDs {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, categoryID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		_, err := tx.Exec(`INSERT INTO student_categories (student_id, category_id)
						   VALUES ($1, $2) ON CONFLICT DO NOTHING`, studentID, categoryID)
		if err != nil {
			return err
		}
	}
	return nil
}

// SoftDeleteStudent flips the deletion flag. Payment rows referencing the
// student are retained; the ON DELETE CASCADE never fires on this path.
func SoftDeleteStudent(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE students SET is_deleted = true, updated_at = NOW()
							WHERE id = $1 AND is_deleted = false`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
