package handler

import (
	"html/template"
	"net/http"

	"Chirpio/internal/middleware"
	"Chirpio/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const confirmationTemplate = "confirmation.html"

var confirmationPage = template.Must(template.New(confirmationTemplate).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Chirpio Backend</title></head>
<body>
  <h1>Chirpio Backend</h1>
  <p>Backend API Status</p>
  <p id="status">{{.Status}}</p>
  <h2>Available Endpoints:</h2>
  <ul>
  {{- range .Endpoints}}
    <li><code>{{.}}</code></li>
  {{- end}}
  </ul>
  <a href="/dashboard">Back to Dashboard</a>
</body>
</html>
`))

var publicEndpoints = []string{
	"GET /api/oauth/facebook/connect",
	"GET /api/oauth/facebook/callback",
	"POST /api/ai-suggest",
	"POST /api/suggestions",
	"POST /api/post/create",
	"DELETE /api/oauth/facebook/disconnect",
	"GET /api/dashboard",
}

// Templates 供 Engine.SetHTMLTemplate 注册
func Templates() *template.Template {
	return confirmationPage
}

type DashboardHandler struct {
	svc *service.DashboardService
	log *zap.Logger
}

func NewDashboardHandler(svc *service.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: log}
}

// Show 当前用户的平台绑定状态
// GET /api/dashboard
func (h *DashboardHandler) Show(c *gin.Context) {
	resp, err := h.svc.Connections(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Confirmation OAuth 回跳的状态页
// GET /dashboard/confirmation
func (h *DashboardHandler) Confirmation(c *gin.Context) {
	status := "No status provided"
	if s := c.Query("success"); s != "" {
		status = "✅ " + s
	} else if e := c.Query("error"); e != "" {
		status = "❌ Error: " + e
	}

	c.HTML(http.StatusOK, confirmationTemplate, gin.H{
		"Status":    status,
		"Endpoints": publicEndpoints,
	})
}
