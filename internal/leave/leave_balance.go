package leave

import (
	"go-leave/internal/domain"
	"go-leave/internal/leavetype"

	"github.com/shopspring/decimal"
)

// BalanceDelta returns the change to the employee's annual leave balance when
// a leave moves from one status to another. A zero from status means the
// leave is being created.
//
// Days are taken when the request is filed, given back when it is rejected or
// cancelled, and taken again if a rejected leave is later approved.
func BalanceDelta(from, to Status, l Leave) int {
	if !domain.LeaveType(l.LeaveType).DeductsBalance() {
		return 0
	}
	switch {
	case from == "" && to == StatusPending:
		return -l.NumberOfDays
	case from == StatusPending && (to == StatusRejected || to == StatusCancelled):
		return l.NumberOfDays
	case from == StatusRejected && to == StatusApproved:
		return -l.NumberOfDays
	default:
		return 0
	}
}

type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    Status `json:"status"`
}

type Balance struct {
	LeaveType        string
	DaysAllowed      int
	DaysUsed         decimal.Decimal
	DaysAvailable    decimal.Decimal
	CarryForwardDays int
	LeaveDateRanges  []DateRange
}

// SummarizeBalances builds one balance per config from the employee's leaves
// in the accrual period. Leaves that are no longer active are ignored.
func SummarizeBalances(configs []leavetype.LeaveTypeConfig, carryForward map[string]int, leaves []Leave) []Balance {
	byType := make(map[string][]Leave)
	for _, l := range leaves {
		if !l.Status.Active() {
			continue
		}
		byType[l.LeaveType] = append(byType[l.LeaveType], l)
	}

	balances := make([]Balance, 0, len(configs))
	for _, cfg := range configs {
		used := decimal.Zero
		ranges := make([]DateRange, 0, len(byType[cfg.LeaveType]))
		for _, l := range byType[cfg.LeaveType] {
			used = used.Add(l.ChargedDays())
			ranges = append(ranges, DateRange{
				StartDate: l.StartDate.Format(dateLayout),
				EndDate:   l.EndDate.Format(dateLayout),
				Status:    l.Status,
			})
		}
		balances = append(balances, Balance{
			LeaveType:        cfg.LeaveType,
			DaysAllowed:      cfg.AnnualLimit,
			DaysUsed:         used,
			DaysAvailable:    decimal.NewFromInt(int64(cfg.AnnualLimit)).Sub(used),
			CarryForwardDays: carryForward[cfg.LeaveType],
			LeaveDateRanges:  ranges,
		})
	}
	return balances
}
