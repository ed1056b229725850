package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a recorded transaction against a specific fee category
// for a student. Payments are hard-deleted only through the delete endpoint;
// soft-deleting a parent student or category leaves them untouched.
type Payment struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID     string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CategoryID    string          `json:"category_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" gorm:"not null;type:numeric(10,2)" validate:"required"`
	PaymentDate   time.Time       `json:"payment_date" gorm:"not null;index;type:date" validate:"required"`
	PaymentMethod string          `json:"payment_method" gorm:"not null;type:varchar(50)" validate:"required"`
	Reference     *string         `json:"reference,omitempty"`
	Notes         *string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Student  *Student  `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
}
