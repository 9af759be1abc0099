package utils

import "context"

type traceKey struct{}

// WithTraceID 把 Trace ID 写入标准 Context，供 service / client 层日志读取
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

// TraceID 没有时返回空串
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}
