package leavetype

import (
	"context"
	"database/sql"

	"go-leave/internal/domain"
	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cfg *LeaveTypeConfig) error
	FindAll(ctx context.Context) ([]LeaveTypeConfig, error)
	FindActive(ctx context.Context) ([]LeaveTypeConfig, error)
	FindByID(ctx context.Context, id string) (*LeaveTypeConfig, error)
	FindByLeaveType(ctx context.Context, leaveType domain.LeaveType) (*LeaveTypeConfig, error)
	Update(ctx context.Context, cfg *LeaveTypeConfig) error
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

func (r *repository) Create(ctx context.Context, cfg *LeaveTypeConfig) error {
	return r.conn(ctx).Create(cfg).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveTypeConfig, error) {
	var cfgs []LeaveTypeConfig
	err := r.conn(ctx).Order("leave_type ASC").Find(&cfgs).Error
	return cfgs, err
}

func (r *repository) FindActive(ctx context.Context) ([]LeaveTypeConfig, error) {
	var cfgs []LeaveTypeConfig
	err := r.conn(ctx).Where("is_active = ?", true).Order("leave_type ASC").Find(&cfgs).Error
	return cfgs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveTypeConfig, error) {
	var cfg LeaveTypeConfig
	if err := r.conn(ctx).First(&cfg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) FindByLeaveType(ctx context.Context, leaveType domain.LeaveType) (*LeaveTypeConfig, error) {
	var cfg LeaveTypeConfig
	if err := r.conn(ctx).First(&cfg, "leave_type = ?", string(leaveType)).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) Update(ctx context.Context, cfg *LeaveTypeConfig) error {
	return r.conn(ctx).
		Model(&LeaveTypeConfig{}).
		Where("id = ?", cfg.ID).
		Updates(map[string]any{
			"annual_limit":      cfg.AnnualLimit,
			"requires_document": cfg.RequiresDocument,
			"description":       cfg.Description,
			"is_active":         cfg.IsActive,
			"updated_at":        gorm.Expr("NOW()"),
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.conn(ctx).Delete(&LeaveTypeConfig{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
