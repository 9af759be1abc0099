package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Chirpio/internal/service"
	"Chirpio/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAuth token "good" -> u1 / org1，其余都失败
type stubAuth struct {
	authorizeErr error
	seen         []string
}

func (s *stubAuth) ResolveUser(_ context.Context, token string) (string, error) {
	s.seen = append(s.seen, token)
	if token == "good" {
		return "u1", nil
	}
	if token == "" {
		return "", service.ErrUnauthenticated
	}
	return "", service.ErrAuthenticationFailed
}

func (s *stubAuth) Authorize(ctx context.Context, token string) (*service.AuthContext, error) {
	if _, err := s.ResolveUser(ctx, token); err != nil {
		return nil, err
	}
	if s.authorizeErr != nil {
		return nil, s.authorizeErr
	}
	return &service.AuthContext{UserID: "u1", OrganisationID: "org1"}, nil
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireVerifiedOrg(t *testing.T) {
	tests := []struct {
		name       string
		cookie     string
		bearer     string
		authErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "no cookie", wantStatus: http.StatusUnauthorized, wantCode: "not_authenticated"},
		{name: "bearer is not enough", bearer: "good", wantStatus: http.StatusUnauthorized, wantCode: "not_authenticated"},
		{name: "bad cookie", cookie: "bad", wantStatus: http.StatusUnauthorized, wantCode: "authentication_failed"},
		{name: "unverified", cookie: "good", authErr: service.ErrNotVerified, wantStatus: http.StatusForbidden, wantCode: "organisation_not_verified"},
		{name: "verified", cookie: "good", wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", RequireVerifiedOrg(&stubAuth{authorizeErr: tt.authErr}), func(c *gin.Context) {
				ac, ok := AuthFrom(c)
				require.True(t, ok)
				c.JSON(http.StatusOK, gin.H{"org": ac.OrganisationID, "user": UserID(c)})
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeErr(t, w)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["code"])
				assert.NotEmpty(t, body["error"])
			} else {
				assert.Equal(t, "org1", body["org"])
				assert.Equal(t, "u1", body["user"])
			}
		})
	}
}

func TestRequireUser(t *testing.T) {
	tests := []struct {
		name       string
		bearer     string
		cookie     string
		wantStatus int
	}{
		{name: "bearer", bearer: "good", wantStatus: http.StatusOK},
		{name: "cookie fallback", cookie: "good", wantStatus: http.StatusOK},
		{name: "rejected bearer falls back to cookie", bearer: "stale", cookie: "good", wantStatus: http.StatusOK},
		{name: "nothing", wantStatus: http.StatusUnauthorized},
		{name: "all rejected", bearer: "stale", cookie: "stale", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", RequireUser(&stubAuth{}), func(c *gin.Context) {
				c.String(http.StatusOK, UserID(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "u1", w.Body.String())
			} else {
				body := decodeErr(t, w)
				assert.Equal(t, "Not authenticated", body["error"])
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":  "abc",
		"Bearer  abc": "abc",
		"Basic abc":   "",
		"":            "",
	}
	for header, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			c.Request.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, BearerToken(c), header)
	}
}

func TestTraceMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware(), RequestLogger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, utils.TraceID(c.Request.Context()))
	})

	t.Run("propagates incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(TraceHeader, "abc123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc123", w.Body.String())
		assert.Equal(t, "abc123", w.Header().Get(TraceHeader))
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		id := w.Header().Get(TraceHeader)
		assert.Len(t, id, 32)
		assert.Equal(t, id, w.Body.String())
	})
}
