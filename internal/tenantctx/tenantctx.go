package tenantctx

import "context"

// Identity captures the authenticated caller that initiated a request,
// including the tenant scope every downstream query must honour.
type Identity struct {
	TenantID  string
	UserID    string
	Username  string
	RoleCodes []string
	IPAddress string
	UserAgent string
}

type identityContextKey struct{}

// WithIdentity injects the caller identity into the supplied context,
// returning a derived context that services can read tenant scope from.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityContextKey{}, id)
}

// FromContext extracts previously stored identity metadata from the context.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}

// TenantID returns the tenant scope carried by the context, if any.
func TenantID(ctx context.Context) (string, bool) {
	id, ok := FromContext(ctx)
	if !ok || id.TenantID == "" {
		return "", false
	}
	return id.TenantID, true
}

// HasRole reports whether the caller carries the given role code.
func (i Identity) HasRole(code string) bool {
	for _, rc := range i.RoleCodes {
		if rc == code {
			return true
		}
	}
	return false
}
