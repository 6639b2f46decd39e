// Package caferepo reads cafes and their staff for dispatch and authorization.
// Cafe and menu management live in another service; these tables are shared.
package caferepo

import (
	"github.com/google/uuid"
)

type CafeDTO struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name    string     `gorm:"not null"`
	OwnerID *uuid.UUID `gorm:"type:uuid;index"`
	Lat     float64    `gorm:"not null"`
	Lng     float64    `gorm:"not null"`
	Active  bool       `gorm:"not null;default:true"`
}

func (CafeDTO) TableName() string {
	return "cafes"
}

// StaffAssignmentDTO grants a user staff rights on a cafe.
type StaffAssignmentDTO struct {
	CafeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (StaffAssignmentDTO) TableName() string {
	return "staff_assignments"
}

// MenuItemDTO is a priced menu entry. Cart lines freeze its price and calories.
type MenuItemDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	CafeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"not null"`
	Price    float64   `gorm:"not null"`
	Calories int       `gorm:"not null"`
	Active   bool      `gorm:"not null;default:true"`
}

func (MenuItemDTO) TableName() string {
	return "items"
}
