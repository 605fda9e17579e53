package logger

import "context"

type ctxKey struct{}

// ContextWithRequestID attaches an id that every log line written with ctx carries.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func withRequestID(ctx context.Context, fields []Field) []Field {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return fields
	}
	return append(fields, String("request_id", id))
}
