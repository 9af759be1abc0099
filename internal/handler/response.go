package handler

import (
	"errors"

	"Chirpio/internal/middleware"
	"Chirpio/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fail 统一错误出口；非业务错误记日志后按 500 返回
func fail(c *gin.Context, log *zap.Logger, err error) {
	var appErr *service.AppError
	if !errors.As(err, &appErr) {
		log.Error("❌ 请求处理失败",
			zap.String("path", c.FullPath()),
			zap.String("trace_id", c.GetString(middleware.TraceContextKey)),
			zap.Error(err),
		)
	}
	middleware.Abort(c, err)
}
