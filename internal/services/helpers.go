package services

import (
	"context"
	"strings"

	"github.com/vigilohq/vigilo/internal/tenantctx"
	apperrors "github.com/vigilohq/vigilo/pkg/errors"
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

// requireTenant resolves the tenant scope carried by the request context.
func requireTenant(ctx context.Context) (string, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok {
		return "", apperrors.ErrTenantRequired
	}
	return tenantID, nil
}

func normaliseIDs(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
