package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const LeaveReference = "leave_reference"

type Repository interface {
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue bumps the named counter with a single upsert so concurrent callers
// never observe the same value.
func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequence_counters (counter_type, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = sequence_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// FormatLeaveReference renders a human readable leave number, e.g. LV-2024-000012.
func FormatLeaveReference(year int, value int64) string {
	return fmt.Sprintf("LV-%d-%06d", year, value)
}
