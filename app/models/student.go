package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Student represents a billed individual, linked to zero or more fee
// categories and zero or more payments. The class field is free text and is
// matched against Class.Name by string only.
type Student struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FirstName string    `json:"first_name" gorm:"not null" validate:"required"`
	LastName  string    `json:"last_name" gorm:"not null" validate:"required"`
	StudentID string    `json:"student_id" gorm:"not null;index" validate:"required"`
	Class     string    `json:"class" gorm:"not null" validate:"required"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty" gorm:"type:varchar(20)"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Categories []*Category `json:"categories,omitempty" gorm:"many2many:student_categories;"`
	Payments   []*Payment  `json:"payments,omitempty" gorm:"foreignKey:StudentID;references:ID"`

	// Derived, populated by the aggregation service for list responses.
	TotalExpected decimal.Decimal `json:"total_expected" gorm:"-"`
	TotalPaid     decimal.Decimal `json:"total_paid" gorm:"-"`
	Balance       decimal.Decimal `json:"balance" gorm:"-"`
	PaymentStatus PaymentStatus   `json:"payment_status" gorm:"-"`
	CategoryNames []string        `json:"category_names" gorm:"-"`
}
