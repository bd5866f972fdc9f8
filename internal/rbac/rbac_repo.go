package rbac

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// RolePermission is an extra grant stored on top of the built-in rules.
type RolePermission struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Role      string `gorm:"size:32;not null;uniqueIndex:uq_role_permission"`
	Resource  string `gorm:"size:64;not null;uniqueIndex:uq_role_permission"`
	Action    string `gorm:"size:64;not null;uniqueIndex:uq_role_permission"`
	CreatedAt time.Time
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	ListRolePermissions(ctx context.Context) ([]RolePermission, error)
	CreateRolePermission(ctx context.Context, rp *RolePermission) error
	DeleteRolePermission(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRolePermissions(ctx context.Context) ([]RolePermission, error) {
	var rows []RolePermission
	err := r.db.WithContext(ctx).Order("role, resource, action").Find(&rows).Error
	return rows, err
}

func (r *repository) CreateRolePermission(ctx context.Context, rp *RolePermission) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *repository) DeleteRolePermission(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&RolePermission{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
