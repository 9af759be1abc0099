package middleware

import (
	"strings"

	"Chirpio/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie 前端登录后写入的会话 cookie
	SessionCookie = "sb-access-token"

	authContextKey = "auth"
	userIDKey      = "userID"
)

// CookieToken 读取会话 cookie
func CookieToken(c *gin.Context) string {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

// BearerToken 读取 Authorization: Bearer <token>
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireVerifiedOrg 校验 cookie 会话，且用户所属组织已认证
func RequireVerifiedOrg(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, err := auth.Authorize(c.Request.Context(), CookieToken(c))
		if err != nil {
			Abort(c, err)
			return
		}
		c.Set(authContextKey, *ac)
		c.Set(userIDKey, ac.UserID)
		c.Next()
	}
}

// RequireUser 只要求登录：先试 Bearer，失败再回退到 cookie；都不行一律 not_authenticated
func RequireUser(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		for _, token := range []string{BearerToken(c), CookieToken(c)} {
			if token == "" {
				continue
			}
			if userID, err := auth.ResolveUser(ctx, token); err == nil {
				c.Set(userIDKey, userID)
				c.Next()
				return
			}
		}
		Abort(c, service.ErrUnauthenticated)
	}
}

// AuthFrom 取出 RequireVerifiedOrg 写入的上下文
func AuthFrom(c *gin.Context) (service.AuthContext, bool) {
	v, ok := c.Get(authContextKey)
	if !ok {
		return service.AuthContext{}, false
	}
	ac, ok := v.(service.AuthContext)
	return ac, ok
}

// UserID 取出当前登录用户 ID
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// Abort 统一的错误响应 {"error", "code"}
func Abort(c *gin.Context, err error) {
	appErr := service.AsAppError(err)
	c.AbortWithStatusJSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
}
