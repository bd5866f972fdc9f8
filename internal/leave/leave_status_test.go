package leave_test

import (
	"testing"

	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/leavetype"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	st, err := leave.ParseStatus(" approved ")
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, st)

	_, err = leave.ParseStatus("ARCHIVED")
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]leave.Status]bool{
		{leave.StatusPending, leave.StatusApproved}:  true,
		{leave.StatusPending, leave.StatusRejected}:  true,
		{leave.StatusPending, leave.StatusCancelled}: true,
		{leave.StatusRejected, leave.StatusApproved}: true,
	}
	all := []leave.Status{leave.StatusPending, leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			pair := [2]leave.Status{from, to}
			assert.Equal(t, allowed[pair], leave.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestBalanceDelta(t *testing.T) {
	pto := leave.Leave{LeaveType: "PTO", NumberOfDays: 3}

	t.Run("success - every path nets out", func(t *testing.T) {
		paths := [][]leave.Status{
			{"", leave.StatusPending, leave.StatusApproved},
			{"", leave.StatusPending, leave.StatusRejected},
			{"", leave.StatusPending, leave.StatusCancelled},
			{"", leave.StatusPending, leave.StatusRejected, leave.StatusApproved},
		}
		want := []int{-3, 0, 0, -3}
		for i, path := range paths {
			total := 0
			for j := 1; j < len(path); j++ {
				total += leave.BalanceDelta(path[j-1], path[j], pto)
			}
			assert.Equal(t, want[i], total, "%v", path)
		}
	})

	t.Run("success - non pto never moves balance", func(t *testing.T) {
		sick := leave.Leave{LeaveType: "SICK", NumberOfDays: 3}
		assert.Zero(t, leave.BalanceDelta("", leave.StatusPending, sick))
		assert.Zero(t, leave.BalanceDelta(leave.StatusPending, leave.StatusRejected, sick))
		assert.Zero(t, leave.BalanceDelta(leave.StatusRejected, leave.StatusApproved, sick))
	})

	t.Run("success - hold days are not charged to the balance", func(t *testing.T) {
		l := pto
		l.HoldDays = decimal.RequireFromString("0.5")
		assert.Equal(t, -3, leave.BalanceDelta("", leave.StatusPending, l))
		assert.True(t, decimal.RequireFromString("3.5").Equal(l.ChargedDays()))
	})
}

func TestSummarizeBalances(t *testing.T) {
	configs := []leavetype.LeaveTypeConfig{
		{LeaveType: "PTO", AnnualLimit: 20, IsActive: true},
		{LeaveType: "SICK", AnnualLimit: 10, IsActive: true},
	}
	emp := uuid.New()
	leaves := []leave.Leave{
		{EmployeeID: emp, LeaveType: "PTO", StartDate: date("2024-03-20"), EndDate: date("2024-03-22"), NumberOfDays: 3, Status: leave.StatusApproved},
		{EmployeeID: emp, LeaveType: "PTO", StartDate: date("2024-04-10"), EndDate: date("2024-04-10"), NumberOfDays: 1, HoldDays: decimal.RequireFromString("0.5"), Status: leave.StatusPending},
		{EmployeeID: emp, LeaveType: "PTO", StartDate: date("2024-05-01"), EndDate: date("2024-05-05"), NumberOfDays: 5, Status: leave.StatusCancelled},
		{EmployeeID: emp, LeaveType: "SICK", StartDate: date("2024-06-01"), EndDate: date("2024-06-02"), NumberOfDays: 2, Status: leave.StatusRejected},
	}

	got := leave.SummarizeBalances(configs, map[string]int{"PTO": 5}, leaves)

	if !assert.Len(t, got, 2) {
		return
	}
	assert.Equal(t, "PTO", got[0].LeaveType)
	assert.True(t, decimal.RequireFromString("4.5").Equal(got[0].DaysUsed))
	assert.True(t, decimal.RequireFromString("15.5").Equal(got[0].DaysAvailable))
	assert.Equal(t, 5, got[0].CarryForwardDays)
	assert.Equal(t, []leave.DateRange{
		{StartDate: "2024-03-20", EndDate: "2024-03-22", Status: leave.StatusApproved},
		{StartDate: "2024-04-10", EndDate: "2024-04-10", Status: leave.StatusPending},
	}, got[0].LeaveDateRanges)

	assert.True(t, decimal.Zero.Equal(got[1].DaysUsed))
	assert.True(t, decimal.NewFromInt(10).Equal(got[1].DaysAvailable))
	assert.Empty(t, got[1].LeaveDateRanges)
}
