package leavepolicy_test

import (
	"context"
	"database/sql"
	"testing"

	"go-leave/internal/domain"
	"go-leave/internal/leavepolicy"
	leavepolicyerrors "go-leave/internal/leavepolicy/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, p *leavepolicy.LeavePolicy) error
	findAllFn  func(ctx context.Context) ([]leavepolicy.LeavePolicy, error)
	findByIDFn func(ctx context.Context, id string) (*leavepolicy.LeavePolicy, error)
	updateFn   func(ctx context.Context, p *leavepolicy.LeavePolicy) error
	deleteFn   func(ctx context.Context, id string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) leavepolicy.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, p *leavepolicy.LeavePolicy) error {
	return f.createFn(ctx, p)
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
	return f.findAllFn(ctx)
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*leavepolicy.LeavePolicy, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) FindActiveByLeaveType(ctx context.Context, leaveType domain.LeaveType) (*leavepolicy.LeavePolicy, error) {
	return nil, nil
}

func (f *fakeRepo) Update(ctx context.Context, p *leavepolicy.LeavePolicy) error {
	return f.updateFn(ctx, p)
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.deleteFn(ctx, id)
}

func boolPtr(v bool) *bool { return &v }

func TestLeavePolicyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var stored *leavepolicy.LeavePolicy
		svc := leavepolicy.NewService(&fakeRepo{
			createFn: func(ctx context.Context, p *leavepolicy.LeavePolicy) error {
				stored = p
				return nil
			},
		})

		resp, err := svc.Create(ctx, leavepolicy.LeavePolicyRequest{
			Name:               "Annual PTO",
			LeaveType:          "pto",
			DaysPerMonth:       "1.67",
			CarryForwardDays:   5,
			MaxConsecutiveDays: 10,
			MinNoticeDays:      3,
		})

		assert.NoError(t, err)
		assert.Equal(t, "PTO", resp.LeaveType)
		assert.Equal(t, "1.67", resp.DaysPerMonth)
		assert.True(t, resp.Active)
		assert.True(t, resp.RequiresApproval)
		assert.True(t, stored.DaysPerMonth.Equal(decimal.RequireFromString("1.67")))
	})

	t.Run("negative - bad days per month", func(t *testing.T) {
		svc := leavepolicy.NewService(&fakeRepo{})

		_, err := svc.Create(ctx, leavepolicy.LeavePolicyRequest{Name: "x", LeaveType: "PTO", DaysPerMonth: "-1"})

		assert.ErrorIs(t, err, leavepolicyerrors.ErrInvalidDaysPerMonth)
	})

	t.Run("negative - negative limits", func(t *testing.T) {
		svc := leavepolicy.NewService(&fakeRepo{})

		_, err := svc.Create(ctx, leavepolicy.LeavePolicyRequest{Name: "x", LeaveType: "PTO", MinNoticeDays: -2})

		assert.ErrorIs(t, err, leavepolicyerrors.ErrInvalidPolicyLimits)
	})

	t.Run("negative - unknown leave type", func(t *testing.T) {
		svc := leavepolicy.NewService(&fakeRepo{})

		_, err := svc.Create(ctx, leavepolicy.LeavePolicyRequest{Name: "x", LeaveType: "HOLIDAY"})

		assert.ErrorIs(t, err, domain.ErrUnknownLeaveType)
	})
}

func TestLeavePolicyService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success - keeps omitted flags", func(t *testing.T) {
		svc := leavepolicy.NewService(&fakeRepo{
			findByIDFn: func(ctx context.Context, got string) (*leavepolicy.LeavePolicy, error) {
				return &leavepolicy.LeavePolicy{ID: id, LeaveType: "SICK", Active: false, RequiresApproval: true}, nil
			},
			updateFn: func(ctx context.Context, p *leavepolicy.LeavePolicy) error { return nil },
		})

		resp, err := svc.Update(ctx, id.String(), leavepolicy.LeavePolicyRequest{
			Name: "Sick", LeaveType: "SICK", MaxConsecutiveDays: 5,
		})

		assert.NoError(t, err)
		assert.False(t, resp.Active)
		assert.Equal(t, 5, resp.MaxConsecutiveDays)
	})

	t.Run("success - reactivates", func(t *testing.T) {
		svc := leavepolicy.NewService(&fakeRepo{
			findByIDFn: func(ctx context.Context, got string) (*leavepolicy.LeavePolicy, error) {
				return &leavepolicy.LeavePolicy{ID: id, LeaveType: "SICK"}, nil
			},
			updateFn: func(ctx context.Context, p *leavepolicy.LeavePolicy) error { return nil },
		})

		resp, err := svc.Update(ctx, id.String(), leavepolicy.LeavePolicyRequest{
			Name: "Sick", LeaveType: "SICK", Active: boolPtr(true),
		})

		assert.NoError(t, err)
		assert.True(t, resp.Active)
	})

	t.Run("negative - not found", func(t *testing.T) {
		svc := leavepolicy.NewService(&fakeRepo{
			findByIDFn: func(ctx context.Context, got string) (*leavepolicy.LeavePolicy, error) {
				return nil, gorm.ErrRecordNotFound
			},
		})

		_, err := svc.Update(ctx, id.String(), leavepolicy.LeavePolicyRequest{Name: "x", LeaveType: "PTO"})

		assert.ErrorIs(t, err, leavepolicyerrors.ErrPolicyNotFound)
	})
}

func TestLeavePolicyService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("negative - invalid id", func(t *testing.T) {
		svc := leavepolicy.NewService(&fakeRepo{})
		assert.ErrorIs(t, svc.Delete(ctx, "bad"), leavepolicyerrors.ErrInvalidPolicyID)
	})

	t.Run("negative - not found", func(t *testing.T) {
		svc := leavepolicy.NewService(&fakeRepo{
			deleteFn: func(ctx context.Context, id string) (int64, error) { return 0, nil },
		})
		assert.ErrorIs(t, svc.Delete(ctx, uuid.NewString()), leavepolicyerrors.ErrPolicyNotFound)
	})

	t.Run("success", func(t *testing.T) {
		svc := leavepolicy.NewService(&fakeRepo{
			deleteFn: func(ctx context.Context, id string) (int64, error) { return 1, nil },
		})
		assert.NoError(t, svc.Delete(ctx, uuid.NewString()))
	})
}
