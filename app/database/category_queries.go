package database

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/twincie/schoolpay/app/models"
)

// GetCategories returns all non-deleted categories ordered by name, each with
// the number of live students assigned to it and the total amount collected
// against it.
func GetCategories(db *sql.DB) ([]*models.Category, error) {
	query := `
		SELECT c.id, c.name, c.amount, c.description, c.is_active, c.is_deleted,
		       c.created_at, c.updated_at,
		       (SELECT COUNT(*)
		          FROM student_categories sc
		          JOIN students s ON s.id = sc.student_id
		         WHERE sc.category_id = c.id AND s.is_deleted = false) AS students_count,
		       COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.category_id = c.id), 0) AS total_collected
		FROM categories c
		WHERE c.is_deleted = false
		ORDER BY c.name ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		err := rows.Scan(
			&category.ID, &category.Name, &category.Amount, &category.Description,
			&category.IsActive, &category.IsDeleted, &category.CreatedAt, &category.UpdatedAt,
			&category.StudentsCount, &category.TotalCollected,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// GetActiveCategories returns non-deleted categories with the active flag set.
func GetActiveCategories(db *sql.DB) ([]*models.Category, error) {
	query := `SELECT id, name, amount, description, is_active, is_deleted, created_at, updated_at
			  FROM categories
			  WHERE is_active = true AND is_deleted = false
			  ORDER BY name ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		err := rows.Scan(
			&category.ID, &category.Name, &category.Amount, &category.Description,
			&category.IsActive, &category.IsDeleted, &category.CreatedAt, &category.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func GetCategoryByID(db *sql.DB, id string) (*models.Category, error) {
	category := &models.Category{}
	query := `SELECT id, name, amount, description, is_active, is_deleted, created_at, updated_at
			  FROM categories WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&category.ID, &category.Name, &category.Amount, &category.Description,
		&category.IsActive, &category.IsDeleted, &category.CreatedAt, &category.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategoryByName resolves a non-deleted category by exact name match. Used
// by the spreadsheet import path.
func GetCategoryByName(db *sql.DB, name string) (*models.Category, error) {
	category := &models.Category{}
	query := `SELECT id, name, amount, description, is_active, is_deleted, created_at, updated_at
			  FROM categories WHERE name = $1 AND is_deleted = false`

	err := db.QueryRow(query, name).Scan(
		&category.ID, &category.Name, &category.Amount, &category.Description,
		&category.IsActive, &category.IsDeleted, &category.CreatedAt, &category.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func CreateCategory(db *sql.DB, category *models.Category) error {
	query := `INSERT INTO categories (name, amount, description)
			  VALUES ($1, $2, $3)
			  RETURNING id, is_active, is_deleted, created_at, updated_at`
	err := db.QueryRow(query, category.Name, category.Amount, category.Description).Scan(
		&category.ID, &category.IsActive, &category.IsDeleted,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// CategoryUpdate carries optional fields for a partial category update.
type CategoryUpdate struct {
	Name        *string
	Amount      decimal.NullDecimal
	Description *string
}

func UpdateCategory(db *sql.DB, id string, update CategoryUpdate) (*models.Category, error) {
	query := `UPDATE categories
			  SET name = COALESCE($2, name),
			      amount = COALESCE($3, amount),
			      description = COALESCE($4, description),
			      updated_at = NOW()
			  WHERE id = $1 AND is_deleted = false`
	result, err := db.Exec(query, id, update.Name, update.Amount, update.Description)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return GetCategoryByID(db, id)
}

// ToggleCategoryStatus flips the active flag; name and amount are untouched.
func ToggleCategoryStatus(db *sql.DB, id string) (*models.Category, error) {
	query := `UPDATE categories SET is_active = NOT is_active, updated_at = NOW()
			  WHERE id = $1 AND is_deleted = false`
	result, err := db.Exec(query, id)
	if err != nil {
		return nil, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return GetCategoryByID(db, id)
}

// SoftDeleteCategory flips the deletion flag. The row is retained so payment
// history referencing the category stays intact.
func SoftDeleteCategory(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE categories SET is_deleted = true, updated_at = NOW()
							WHERE id = $1 AND is_deleted = false`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
