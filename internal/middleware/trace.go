package middleware

import (
	"strings"

	"Chirpio/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceContextKey 用于在 Gin Context 中存储 Trace ID
const TraceContextKey = "traceID"

const TraceHeader = "X-Trace-Id"

func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 优先从 Header 获取（如果前端传了），否则生成新的
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = strings.ReplaceAll(uuid.NewString(), "-", "")
		}

		// 2. 存入 Gin Context 和标准 Context
		c.Set(TraceContextKey, traceID)
		c.Request = c.Request.WithContext(utils.WithTraceID(c.Request.Context(), traceID))

		// 3. 回写 Header，方便调试
		c.Header(TraceHeader, traceID)

		c.Next()
	}
}
