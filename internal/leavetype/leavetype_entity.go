package leavetype

import (
	"time"

	"github.com/google/uuid"
)

type LeaveTypeConfig struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveType        string    `gorm:"size:32;not null;uniqueIndex:uq_leave_type_config"`
	AnnualLimit      int       `gorm:"not null"`
	RequiresDocument bool      `gorm:"not null"`
	Description      string    `gorm:"size:255"`
	IsActive         bool      `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (LeaveTypeConfig) TableName() string {
	return "leave_type_configs"
}
