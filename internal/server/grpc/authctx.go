package grpcserver

import "context"

type ctxKey string

const (
	userIDKey  ctxKey = "sl.userID"
	companyKey ctxKey = "sl.company"
)

// WithUser stores the authenticated user and company in context.
func WithUser(ctx context.Context, userID, company string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, companyKey, company)
}

// UserIDFromCtx fetches the user ID placed by AuthUnary.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// CompanyFromCtx fetches the company claim placed by AuthUnary.
func CompanyFromCtx(ctx context.Context) (string, bool) {
	c, ok := ctx.Value(companyKey).(string)
	return c, ok && c != ""
}
