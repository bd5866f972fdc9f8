package employee

import (
	"time"

	"github.com/google/uuid"
)

const DefaultAnnualLeaveBalance = 20

type Employee struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email              string    `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	FirstName          string    `gorm:"size:100;not null"`
	LastName           string    `gorm:"size:100;not null"`
	Department         string    `gorm:"size:100"`
	Position           string    `gorm:"size:100"`
	Role               string    `gorm:"size:32;not null;index"`
	AnnualLeaveBalance int       `gorm:"not null"`
	Version            int       `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
