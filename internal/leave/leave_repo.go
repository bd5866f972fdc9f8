package leave

import (
	"context"
	"database/sql"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/shared/database"
	"go-leave/internal/shared/scope"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var activeStatuses = []Status{StatusPending, StatusApproved}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	FindByStatus(ctx context.Context, status Status) ([]Leave, error)
	FindAllSorted(ctx context.Context, page, pageSize int) ([]Leave, int64, error)
	FindActiveByEmployeeInYear(ctx context.Context, employeeID string, year int) ([]Leave, error)
	SumUsedDays(ctx context.Context, employeeID string, leaveType domain.LeaveType, year int) (decimal.Decimal, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error)
	UpdateStatus(ctx context.Context, l *Leave) error
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Order("application_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByStatus(ctx context.Context, status Status) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("status = ?", status).
		Order("application_date ASC").
		Find(&leaves).Error
	return leaves, err
}

// FindAllSorted lists pending leaves first, newest application first inside
// each group.
func (r *repository) FindAllSorted(ctx context.Context, page, pageSize int) ([]Leave, int64, error) {
	var (
		leaves []Leave
		total  int64
	)
	if err := r.conn(ctx).Model(&Leave{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.conn(ctx).
		Scopes(scope.Paginate(page, pageSize)).
		Order("CASE WHEN status = 'PENDING' THEN 0 ELSE 1 END, application_date DESC").
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindActiveByEmployeeInYear(ctx context.Context, employeeID string, year int) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Scopes(scope.ByEmployee(employeeID), scope.StartingInYear(year)).
		Where("status IN ?", activeStatuses).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) SumUsedDays(ctx context.Context, employeeID string, leaveType domain.LeaveType, year int) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.conn(ctx).
		Model(&Leave{}).
		Select("COALESCE(SUM(number_of_days + hold_days), 0) AS total").
		Scopes(scope.ByEmployee(employeeID), scope.StartingInYear(year)).
		Where("leave_type = ?", leaveType).
		Where("status IN ?", activeStatuses).
		Scan(&row).Error
	return row.Total, err
}

// HasOverlappingPeriod reports whether an active leave of the employee shares
// a day with the range. excludeID, when set, leaves that leave out.
func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error) {
	var count int64
	q := r.conn(ctx).
		Model(&Leave{}).
		Scopes(scope.ByEmployee(employeeID)).
		Where("status IN ?", activeStatuses).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// UpdateStatus writes the decision fields guarded by the version the caller read.
func (r *repository) UpdateStatus(ctx context.Context, l *Leave) error {
	res := r.conn(ctx).
		Model(&Leave{}).
		Where("id = ? AND version = ?", l.ID, l.Version).
		Updates(map[string]any{
			"status":           l.Status,
			"rejection_reason": l.RejectionReason,
			"decided_by":       l.DecidedBy,
			"decided_at":       l.DecidedAt,
			"version":          gorm.Expr("version + 1"),
			"updated_at":       gorm.Expr("NOW()"),
		})
	if err := database.CheckVersioned(res); err != nil {
		return err
	}
	l.Version++
	return nil
}
