package leave

import (
	"time"

	"go-leave/internal/domain"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/leavepolicy"
	"go-leave/internal/leavetype"

	"github.com/shopspring/decimal"
)

// ValidationInput is everything needed to judge a leave request. Config and
// Policy may be nil when none is stored for the leave type.
type ValidationInput struct {
	LeaveType   domain.LeaveType
	StartDate   time.Time
	EndDate     time.Time
	Duration    Duration
	HoldDays    decimal.Decimal
	HasDocument bool

	Config *leavetype.LeaveTypeConfig
	Policy *leavepolicy.LeavePolicy

	// UsedDays is what the employee already consumed of this leave type in
	// the accrual period, hold days included.
	UsedDays decimal.Decimal
	Balance  int
	Today    time.Time
}

// Validate checks a request against type config, policy and balance and
// returns the inclusive number of days it spans. It has no side effects.
func Validate(in ValidationInput) (int, error) {
	start, end := truncateDate(in.StartDate), truncateDate(in.EndDate)
	if end.Before(start) {
		return 0, leaveerrors.ErrInvalidRange
	}
	days := CountDays(start, end)

	if in.Duration == DurationHalfDay && days != 1 {
		return 0, leaveerrors.ErrHalfDayRange
	}
	if in.HoldDays.IsNegative() {
		return 0, leaveerrors.ErrNegativeHoldDays
	}

	if in.Config == nil || !in.Config.IsActive {
		return 0, leaveerrors.ErrTypeInactive
	}
	if in.Config.RequiresDocument && !in.HasDocument {
		return 0, leaveerrors.ErrDocumentRequired
	}

	requested := decimal.NewFromInt(int64(days)).Add(in.HoldDays)
	limit := decimal.NewFromInt(int64(in.Config.AnnualLimit))
	if in.UsedDays.Add(requested).GreaterThan(limit) {
		return 0, leaveerrors.ErrExceedsAnnualLimit
	}
	if in.LeaveType.DeductsBalance() && requested.GreaterThan(decimal.NewFromInt(int64(in.Balance))) {
		return 0, leaveerrors.ErrExceedsBalance
	}

	if in.Policy != nil && in.Policy.Active {
		if in.Policy.MaxConsecutiveDays > 0 && days > in.Policy.MaxConsecutiveDays {
			return 0, leaveerrors.ErrExceedsMaxConsecutive
		}
		if in.Policy.MinNoticeDays > 0 {
			if daysBetween(truncateDate(in.Today), start) < in.Policy.MinNoticeDays {
				return 0, leaveerrors.ErrInsufficientNotice
			}
		}
	}

	return days, nil
}

// CountDays returns the inclusive calendar day count between two dates.
func CountDays(start, end time.Time) int {
	return daysBetween(truncateDate(start), truncateDate(end)) + 1
}

// daysBetween works on whole UTC days. time.Sub saturates after ~292 years.
func daysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
