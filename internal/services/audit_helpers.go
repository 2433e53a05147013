package services

import "context"

// recordAudit logs best-effort: audit failures never fail the operation.
func recordAudit(audit *AuditService, ctx context.Context, entry AuditEntry) {
	if audit == nil {
		return
	}
	_ = audit.Log(ctx, entry)
}
