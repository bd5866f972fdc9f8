package app

import (
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/leavepolicy"
	"go-leave/internal/leavetype"
	"go-leave/internal/rbac"

	"gorm.io/gorm"
)

// Tables written with raw SQL have no gorm model.
var rawTables = []string{
	`CREATE TABLE IF NOT EXISTS sequence_counters (
		counter_type VARCHAR(64) PRIMARY KEY,
		last_value   BIGINT      NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id             UUID PRIMARY KEY,
		request_id     VARCHAR(64),
		aggregate_type VARCHAR(64)  NOT NULL,
		aggregate_id   UUID         NOT NULL,
		event_type     VARCHAR(64)  NOT NULL,
		topic          VARCHAR(255) NOT NULL,
		payload        JSONB        NOT NULL,
		status         VARCHAR(16)  NOT NULL,
		retry_count    INT          NOT NULL DEFAULT 0,
		error_message  VARCHAR(500),
		next_retry_at  TIMESTAMPTZ,
		processed_at   TIMESTAMPTZ,
		created_at     TIMESTAMPTZ  NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ  NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_pending ON outbox_events (status, next_retry_at, created_at)`,
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&leavetype.LeaveTypeConfig{},
		&leavepolicy.LeavePolicy{},
		&leave.Leave{},
		&rbac.RolePermission{},
	); err != nil {
		return err
	}
	for _, stmt := range rawTables {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
