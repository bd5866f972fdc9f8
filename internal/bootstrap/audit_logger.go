package bootstrap

import "context"

// AuditLog is a process-level event worth keeping after the logs rotate.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
