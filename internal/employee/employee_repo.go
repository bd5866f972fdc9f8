package employee

import (
	"context"
	"database/sql"

	"go-leave/internal/domain"
	"go-leave/internal/shared/database"
	"go-leave/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, page, pageSize int) ([]Employee, int64, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Employee, error)
	FindByRoles(ctx context.Context, roles []domain.Role) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	UpdateBalance(ctx context.Context, empl *Employee, newBalance int) error
	DeleteLeavesByEmployee(ctx context.Context, id string) (int64, error)
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
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return database.Bind(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, page, pageSize int) ([]Employee, int64, error) {
	var (
		emps  []Employee
		total int64
	)
	if err := r.conn(ctx).Model(&Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.conn(ctx).
		Scopes(scope.Paginate(page, pageSize)).
		Order("last_name ASC, first_name ASC").
		Find(&emps).Error
	return emps, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	if err := r.conn(ctx).First(&empl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByRoles(ctx context.Context, roles []domain.Role) ([]Employee, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	var emps []Employee
	err := r.conn(ctx).Where("role IN ?", names).Order("email ASC").Find(&emps).Error
	return emps, err
}

// Update writes the profile fields guarded by the version the caller read.
func (r *repository) Update(ctx context.Context, empl *Employee) error {
	res := r.conn(ctx).
		Model(&Employee{}).
		Where("id = ? AND version = ?", empl.ID, empl.Version).
		Updates(map[string]any{
			"email":      empl.Email,
			"first_name": empl.FirstName,
			"last_name":  empl.LastName,
			"department": empl.Department,
			"position":   empl.Position,
			"role":       empl.Role,
			"version":    gorm.Expr("version + 1"),
			"updated_at": gorm.Expr("NOW()"),
		})
	if err := database.CheckVersioned(res); err != nil {
		return err
	}
	empl.Version++
	return nil
}

func (r *repository) UpdateBalance(ctx context.Context, empl *Employee, newBalance int) error {
	res := r.conn(ctx).
		Model(&Employee{}).
		Where("id = ? AND version = ?", empl.ID, empl.Version).
		Updates(map[string]any{
			"annual_leave_balance": newBalance,
			"version":              gorm.Expr("version + 1"),
			"updated_at":           gorm.Expr("NOW()"),
		})
	if err := database.CheckVersioned(res); err != nil {
		return err
	}
	empl.AnnualLeaveBalance = newBalance
	empl.Version++
	return nil
}

func (r *repository) DeleteLeavesByEmployee(ctx context.Context, id string) (int64, error) {
	res := r.conn(ctx).Exec("DELETE FROM leaves WHERE employee_id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
