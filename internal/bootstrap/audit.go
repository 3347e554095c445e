package bootstrap

import "context"

// AuditLog is an operational event worth keeping apart from access logs:
// server lifecycle and the domain events replayed by the audit consumer.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
