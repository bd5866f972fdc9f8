package leavepolicy

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LeavePolicy struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name               string          `gorm:"size:100;not null"`
	Description        string          `gorm:"size:255"`
	LeaveType          string          `gorm:"size:32;not null;index"`
	DaysPerMonth       decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	CarryForwardDays   int             `gorm:"not null"`
	MaxConsecutiveDays int             `gorm:"not null"`
	MinNoticeDays      int             `gorm:"not null"`
	RequiresApproval   bool            `gorm:"not null"`
	Active             bool            `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}
