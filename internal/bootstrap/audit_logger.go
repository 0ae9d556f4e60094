package bootstrap

import "context"

// AuditLog is one line in the business audit trail: who did what to the
// payroll data, with enough metadata to reconstruct the event later.
type AuditLog struct {
	Action   string
	Message  string
	Operator string
	Meta     map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
