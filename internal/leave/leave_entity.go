package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Duration string

const (
	DurationFullDay Duration = "FULL_DAY"
	DurationHalfDay Duration = "HALF_DAY"
)

type Leave struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReferenceNo            string          `gorm:"size:32;not null;uniqueIndex:uq_leave_reference_no"`
	EmployeeID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	LeaveType              string          `gorm:"size:32;not null;index"`
	StartDate              time.Time       `gorm:"type:date;not null"`
	EndDate                time.Time       `gorm:"type:date;not null"`
	NumberOfDays           int             `gorm:"not null"`
	HoldDays               decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	LeaveDuration          Duration        `gorm:"size:16;not null"`
	Reason                 string          `gorm:"type:text;not null"`
	Status                 Status          `gorm:"size:20;not null;index"`
	RejectionReason        *string         `gorm:"type:text"`
	ApplicationDate        time.Time       `gorm:"not null"`
	SupportingDocumentPath *string         `gorm:"size:512"`
	DecidedBy              *uuid.UUID      `gorm:"type:uuid"`
	DecidedAt              *time.Time
	Version                int `gorm:"not null"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (Leave) TableName() string {
	return "leaves"
}

// ChargedDays is what the leave counts against a yearly allowance.
func (l Leave) ChargedDays() decimal.Decimal {
	return decimal.NewFromInt(int64(l.NumberOfDays)).Add(l.HoldDays)
}
