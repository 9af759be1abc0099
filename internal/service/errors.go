package service

import (
	"context"
	"errors"
	"net/http"

	"Chirpio/internal/utils"

	"go.uber.org/zap"
)

// AppError 业务错误：携带 HTTP 状态码和机器可读的 code
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

// Is 按 Code 比较，方便 errors.Is 匹配带自定义 Message 的副本
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithMessage 返回同类错误的副本，只替换提示文案
func (e *AppError) WithMessage(msg string) *AppError {
	return &AppError{Status: e.Status, Code: e.Code, Message: msg}
}

var (
	// 鉴权
	ErrUnauthenticated      = &AppError{http.StatusUnauthorized, "not_authenticated", "Not authenticated"}
	ErrAuthenticationFailed = &AppError{http.StatusUnauthorized, "authentication_failed", "Authentication failed"}
	ErrNoMembership         = &AppError{http.StatusForbidden, "no_membership", "No organisation membership found"}
	ErrOrganisationNotFound = &AppError{http.StatusForbidden, "organisation_not_found", "Organisation not found"}
	ErrNotVerified          = &AppError{http.StatusForbidden, "organisation_not_verified", "Organisation not verified"}

	// 参数校验
	ErrInvalidBody      = &AppError{http.StatusBadRequest, "invalid_body", "Invalid request body"}
	ErrMissingContent   = &AppError{http.StatusBadRequest, "missing_content", "Content is required"}
	ErrInvalidPlatforms = &AppError{http.StatusBadRequest, "invalid_platforms", "Platforms array is required"}
	ErrInvalidSchedule  = &AppError{http.StatusBadRequest, "invalid_schedule", "Invalid scheduled_time format"}

	// 上游 (数据库 / 第三方接口)
	ErrUpstream = &AppError{http.StatusInternalServerError, "upstream_failure", "Internal server error"}
)

// AsAppError 非 AppError 一律当作 500
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrUpstream
}

// traceField 日志里带上请求的 Trace ID
func traceField(ctx context.Context) zap.Field {
	return zap.String("trace_id", utils.TraceID(ctx))
}
