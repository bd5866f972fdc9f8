package leavepolicy

import (
	"context"
	"database/sql"
	"errors"

	"go-leave/internal/domain"
	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavepolicy_repo.go -destination=mock/leavepolicy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *LeavePolicy) error
	FindAll(ctx context.Context) ([]LeavePolicy, error)
	FindByID(ctx context.Context, id string) (*LeavePolicy, error)
	// FindActiveByLeaveType returns nil, nil when no active policy governs the type.
	FindActiveByLeaveType(ctx context.Context, leaveType domain.LeaveType) (*LeavePolicy, error)
	Update(ctx context.Context, p *LeavePolicy) error
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return database.Bind(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, p *LeavePolicy) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.conn(ctx).Order("leave_type ASC, name ASC").Find(&policies).Error
	return policies, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeavePolicy, error) {
	var p LeavePolicy
	if err := r.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindActiveByLeaveType(ctx context.Context, leaveType domain.LeaveType) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.conn(ctx).
		Where("leave_type = ? AND active = ?", string(leaveType), true).
		Order("updated_at DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *LeavePolicy) error {
	return r.conn(ctx).
		Model(&LeavePolicy{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":                 p.Name,
			"description":          p.Description,
			"leave_type":           p.LeaveType,
			"days_per_month":       p.DaysPerMonth,
			"carry_forward_days":   p.CarryForwardDays,
			"max_consecutive_days": p.MaxConsecutiveDays,
			"min_notice_days":      p.MinNoticeDays,
			"requires_approval":    p.RequiresApproval,
			"active":               p.Active,
			"updated_at":           gorm.Expr("NOW()"),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.conn(ctx).Delete(&LeavePolicy{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
