package httpx

import "context"

type ctxKey string

const (
	ctxKeyPrincipal ctxKey = "principal"
)

// Principal is the authenticated caller as established by AuthnMiddleware.
type Principal struct {
	ID    string
	Email string
	Name  string
}

// WithPrincipal returns ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext returns the caller, if authenticated.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return p, ok && p.ID != ""
}
