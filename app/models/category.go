package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category represents a billable fee type with a fixed amount, assignable to students.
type Category struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name        string          `json:"name" gorm:"not null" validate:"required"`
	Amount      decimal.Decimal `json:"amount" gorm:"not null;type:numeric(10,2)" validate:"required"`
	Description *string         `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	IsDeleted   bool            `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Students []*Student `json:"students,omitempty" gorm:"many2many:student_categories;"`
	Payments []*Payment `json:"payments,omitempty" gorm:"foreignKey:CategoryID;references:ID"`

	// Derived, populated by queries/services for list responses.
	StudentsCount  int             `json:"students_count" gorm:"-"`
	TotalCollected decimal.Decimal `json:"total_collected" gorm:"-"`
	CollectionRate int             `json:"collection_rate" gorm:"-"`
}
