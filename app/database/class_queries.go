package database

import (
	"database/sql"

	"github.com/twincie/schoolpay/app/models"
)

// GetClasses returns all classes with the number of live students whose class
// field matches the class name. The link is a plain string match, there is no
// foreign key between students and classes.
func GetClasses(db *sql.DB) ([]*models.Class, error) {
	query := `SELECT c.id, c.name, c.description, c.is_active, c.created_at, c.updated_at,
			         (SELECT COUNT(*) FROM students s
			           WHERE s.class = c.name AND s.is_deleted = false) AS student_count
			  FROM classes c
			  ORDER BY c.name ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class := &models.Class{}
		err := rows.Scan(
			&class.ID, &class.Name, &class.Description, &class.IsActive,
			&class.CreatedAt, &class.UpdatedAt, &class.StudentCount,
		)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

func GetClassByID(db *sql.DB, id string) (*models.Class, error) {
	class := &models.Class{}
	query := `SELECT id, name, description, is_active, created_at, updated_at
			  FROM classes WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&class.ID, &class.Name, &class.Description, &class.IsActive,
		&class.CreatedAt, &class.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return class, nil
}

func CreateClass(db *sql.DB, class *models.Class) error {
	query := `INSERT INTO classes (name, description)
			  VALUES ($1, $2)
			  RETURNING id, is_active, created_at, updated_at`
	err := db.QueryRow(query, class.Name, class.Description).Scan(
		&class.ID, &class.IsActive, &class.CreatedAt, &class.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// ClassUpdate carries optional fields for a partial class update.
type ClassUpdate struct {
	Name        *string
	Description *string
}

func UpdateClass(db *sql.DB, id string, update ClassUpdate) (*models.Class, error) {
	query := `UPDATE classes
			  SET name = COALESCE($2, name),
			      description = COALESCE($3, description),
			      updated_at = NOW()
			  WHERE id = $1`
	result, err := db.Exec(query, id, update.Name, update.Description)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return GetClassByID(db, id)
}

func ToggleClassStatus(db *sql.DB, id string) (*models.Class, error) {
	result, err := db.Exec(`UPDATE classes SET is_active = NOT is_active, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return GetClassByID(db, id)
}

// DeleteClass removes the row permanently. Students keep their class string;
// nothing cascades.
func DeleteClass(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
