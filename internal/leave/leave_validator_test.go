package leave_test

import (
	"testing"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/leavepolicy"
	"go-leave/internal/leavetype"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func baseInput() leave.ValidationInput {
	return leave.ValidationInput{
		LeaveType: domain.LeaveTypePTO,
		StartDate: date("2024-03-20"),
		EndDate:   date("2024-03-22"),
		Duration:  leave.DurationFullDay,
		Config: &leavetype.LeaveTypeConfig{
			LeaveType:   "PTO",
			AnnualLimit: 20,
			IsActive:    true,
		},
		UsedDays: decimal.Zero,
		Balance:  20,
		Today:    date("2024-03-01"),
	}
}

func TestCountDays(t *testing.T) {
	start := date("2024-01-01")
	for offset := 0; offset < 400; offset += 7 {
		end := start.AddDate(0, 0, offset)
		assert.Equal(t, offset+1, leave.CountDays(start, end), end.Format("2006-01-02"))
	}

	// Ranges wider than time.Duration can hold.
	assert.Equal(t, 3652059, leave.CountDays(date("0001-01-01"), date("9999-12-31")))
	assert.Equal(t, 146098, leave.CountDays(date("1600-01-01"), date("2000-01-01")))

	// Leap day and time-of-day noise are ignored.
	assert.Equal(t, 2, leave.CountDays(date("2024-02-28"), date("2024-02-29")))
	assert.Equal(t, 1, leave.CountDays(
		time.Date(2024, 3, 20, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 1, 0, 0, 0, time.UTC),
	))
}

func TestValidate(t *testing.T) {
	t.Run("success - returns inclusive days", func(t *testing.T) {
		days, err := leave.Validate(baseInput())
		assert.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("negative - invalid range", func(t *testing.T) {
		in := baseInput()
		in.StartDate, in.EndDate = in.EndDate, in.StartDate
		in.Config = nil

		_, err := leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidRange)
	})

	t.Run("negative - half day over several days", func(t *testing.T) {
		in := baseInput()
		in.Duration = leave.DurationHalfDay

		_, err := leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrHalfDayRange)
	})

	t.Run("success - half day on a single day", func(t *testing.T) {
		in := baseInput()
		in.Duration = leave.DurationHalfDay
		in.EndDate = in.StartDate

		days, err := leave.Validate(in)
		assert.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("negative - negative hold days", func(t *testing.T) {
		in := baseInput()
		in.HoldDays = decimal.RequireFromString("-0.5")

		_, err := leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrNegativeHoldDays)
	})

	t.Run("negative - missing or inactive type", func(t *testing.T) {
		in := baseInput()
		in.Config = nil
		_, err := leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrTypeInactive)

		in = baseInput()
		in.Config.IsActive = false
		_, err = leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrTypeInactive)
	})

	t.Run("negative - document required", func(t *testing.T) {
		in := baseInput()
		in.LeaveType = domain.LeaveTypeSick
		in.Config.RequiresDocument = true

		_, err := leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrDocumentRequired)

		in.HasDocument = true
		_, err = leave.Validate(in)
		assert.NoError(t, err)
	})

	t.Run("negative - annual limit includes hold days", func(t *testing.T) {
		in := baseInput()
		in.UsedDays = decimal.NewFromInt(17)
		_, err := leave.Validate(in)
		assert.NoError(t, err)

		in.HoldDays = decimal.RequireFromString("0.5")
		_, err = leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrExceedsAnnualLimit)
	})

	t.Run("negative - centuries wide range", func(t *testing.T) {
		in := baseInput()
		in.StartDate = date("1700-01-01")
		in.EndDate = date("2024-03-22")

		_, err := leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrExceedsAnnualLimit)
	})

	t.Run("negative - pto exceeds balance", func(t *testing.T) {
		in := baseInput()
		in.Balance = 2

		_, err := leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrExceedsBalance)
	})

	t.Run("success - other types ignore balance", func(t *testing.T) {
		in := baseInput()
		in.LeaveType = domain.LeaveTypeUnpaid
		in.Balance = 0

		_, err := leave.Validate(in)
		assert.NoError(t, err)
	})

	t.Run("negative - max consecutive days", func(t *testing.T) {
		in := baseInput()
		in.Policy = &leavepolicy.LeavePolicy{MaxConsecutiveDays: 2, Active: true}

		_, err := leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrExceedsMaxConsecutive)
	})

	t.Run("negative - insufficient notice", func(t *testing.T) {
		in := baseInput()
		in.Policy = &leavepolicy.LeavePolicy{MinNoticeDays: 30, Active: true}

		_, err := leave.Validate(in)
		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientNotice)

		in.Policy.MinNoticeDays = 19
		_, err = leave.Validate(in)
		assert.NoError(t, err)
	})

	t.Run("success - inactive policy is ignored", func(t *testing.T) {
		in := baseInput()
		in.Policy = &leavepolicy.LeavePolicy{MaxConsecutiveDays: 1, MinNoticeDays: 90, Active: false}

		_, err := leave.Validate(in)
		assert.NoError(t, err)
	})

	t.Run("success - zero policy limits mean unlimited", func(t *testing.T) {
		in := baseInput()
		in.Policy = &leavepolicy.LeavePolicy{Active: true}

		_, err := leave.Validate(in)
		assert.NoError(t, err)
	})
}
