package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if it does not exist yet. All statements
// are idempotent so the runner is safe to execute on every startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			amount NUMERIC(10,2) NOT NULL CHECK (amount >= 0),
			description TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			is_deleted BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		// Name uniqueness only applies to live rows; a soft-deleted category
		// must not block reuse of its name.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_live_name
			ON categories (LOWER(name)) WHERE is_deleted = false`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			student_id VARCHAR(50) NOT NULL,
			class VARCHAR(100) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(20),
			is_deleted BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_students_live_student_id
			ON students (student_id) WHERE is_deleted = false`,
		`CREATE TABLE IF NOT EXISTS student_categories (
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			PRIMARY KEY (student_id, category_id)
		)`,
		// The cascades above only fire on physical deletes. Students and
		// categories are soft-deleted through the API, so payment history
		// survives their removal.
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			amount NUMERIC(10,2) NOT NULL CHECK (amount > 0),
			payment_date DATE NOT NULL,
			payment_method VARCHAR(50) NOT NULL,
			reference VARCHAR(255),
			notes TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_payment_date ON payments (payment_date)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_student_id ON payments (student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_category_id ON payments (category_id)`,
		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) UNIQUE NOT NULL,
			description TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
