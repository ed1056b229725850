package models

import "time"

// Class is an independent entity; students reference it by name only.
type Class struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	StudentCount int `json:"student_count" gorm:"-"`
}
