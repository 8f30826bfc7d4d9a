// Package userctx carries the signed-in operator through request contexts.
package userctx

import "context"

type contextKey string

const operatorIDKey contextKey = "operator_id"
const operatorNameKey contextKey = "operator_name"

// SetOperatorID adds the operator's subject identifier to the context
func SetOperatorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operatorIDKey, id)
}

// GetOperatorID retrieves the operator's subject identifier, or "" when the
// request is unauthenticated
func GetOperatorID(ctx context.Context) string {
	id, _ := ctx.Value(operatorIDKey).(string)
	return id
}

// SetOperatorName adds the operator's display name to the context
func SetOperatorName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operatorNameKey, name)
}

// GetOperatorName retrieves the operator's display name, falling back to
// "anonymous" for unauthenticated requests
func GetOperatorName(ctx context.Context) string {
	name, _ := ctx.Value(operatorNameKey).(string)
	if name == "" {
		return "anonymous"
	}
	return name
}
