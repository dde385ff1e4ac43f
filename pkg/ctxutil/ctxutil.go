package ctxutil

import (
	"context"
)

type ctxKey string

const (
	partnerKey   ctxKey = "partner"
	requestIDKey ctxKey = "request_id"
)

// Partner identifies the caller on whose behalf a request runs.
// Documents created during ingestion default to this partner.
type Partner struct {
	Name string
	VAT  string
}

// WithPartner stores the caller's partner in the context.
func WithPartner(ctx context.Context, p Partner) context.Context {
	return context.WithValue(ctx, partnerKey, p)
}

// PartnerFromCtx extracts the caller's partner from the context.
// Returns a zero Partner and false if absent.
func PartnerFromCtx(ctx context.Context) (Partner, bool) {
	p, ok := ctx.Value(partnerKey).(Partner)
	if !ok || (p.Name == "" && p.VAT == "") {
		return Partner{}, false
	}
	return p, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
