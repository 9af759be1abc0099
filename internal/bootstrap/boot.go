package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"Chirpio/internal/client"
	"Chirpio/internal/conf"
	"Chirpio/internal/data"
	"Chirpio/internal/handler"
	"Chirpio/internal/middleware"
	"Chirpio/internal/repository"
	"Chirpio/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Services 路由需要的全部服务，测试时可以注入 fake 仓储构建的实例
type Services struct {
	Auth      service.AuthService
	Suggest   *service.SuggestService
	Post      *service.PostService
	OAuth     *service.OAuthService
	Dashboard *service.DashboardService
}

// NewRouter 组装中间件和路由
func NewRouter(cfg *conf.Config, svc Services, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.RequestLogger(log))

	// CORS 配置
	origins := cfg.App.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", middleware.TraceHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.TraceHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.SetHTMLTemplate(handler.Templates())

	suggestH := handler.NewSuggestHandler(svc.Suggest, log)
	postH := handler.NewPostHandler(svc.Post, log)
	oauthH := handler.NewOAuthHandler(svc.OAuth, cfg.App.PublicURL, log)
	dashH := handler.NewDashboardHandler(svc.Dashboard, log)

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/dashboard/confirmation", dashH.Confirmation)

	api := r.Group("/api")
	{
		// 公开接口
		api.POST("/suggestions", suggestH.PublicSuggest)
		api.GET("/oauth/facebook/connect", oauthH.Connect)
		api.GET("/oauth/facebook/callback", oauthH.Callback)

		// 需要已认证组织 (cookie)
		org := api.Group("/")
		org.Use(middleware.RequireVerifiedOrg(svc.Auth))
		{
			org.POST("/ai-suggest", suggestH.OrgSuggest)
			org.POST("/post/create", postH.Create)
		}

		// 只要求登录 (Bearer 或 cookie)
		user := api.Group("/")
		user.Use(middleware.RequireUser(svc.Auth))
		{
			user.DELETE("/oauth/facebook/disconnect", oauthH.Disconnect)
			user.GET("/dashboard", dashH.Show)
		}
	}

	return r
}

// NewTextGenerator 按配置选择润色供应商
func NewTextGenerator(ctx context.Context, cfg conf.AIConfig, log *zap.Logger) (service.TextGenerator, error) {
	switch cfg.Provider {
	case "", "openai":
		return client.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.Model, log), nil
	case "gemini":
		return client.NewGeminiClient(ctx, cfg.GeminiKey, cfg.Model, "")
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// Run 启动服务器，ctx 取消后优雅退出
func Run(ctx context.Context, cfg *conf.Config, log *zap.Logger) error {
	// 1. 校验配置
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 2. 初始化数据层
	d, cleanup, err := data.NewData(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// 3. 初始化外部客户端
	httpClient := &http.Client{Timeout: 15 * time.Second}
	sessions := client.NewSupabaseAuth(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, httpClient)
	facebook := client.NewFacebookClient(cfg.Facebook, httpClient)
	gen, err := NewTextGenerator(ctx, cfg.AI, log)
	if err != nil {
		return err
	}

	// 4. 初始化 Repository 与 Service
	orgRepo := repository.NewOrgRepository(d.DB)
	accountRepo := repository.NewSocialAccountRepository(d.DB)

	authSvc := service.NewAuthService(sessions, orgRepo, log)
	svc := Services{
		Auth:      authSvc,
		Suggest:   service.NewSuggestService(gen, repository.NewSuggestionLogRepository(d.DB), log),
		Post:      service.NewPostService(repository.NewPostRepository(d.DB), log),
		OAuth:     service.NewOAuthService(facebook, authSvc, accountRepo, repository.NewStateStore(d.Redis), log),
		Dashboard: service.NewDashboardService(accountRepo, log),
	}

	// 5. 启动 HTTP 服务
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           NewRouter(cfg, svc, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("🚀 Chirpio 后端已启动", zap.String("addr", srv.Addr), zap.String("ai_provider", gen.Provider()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("收到退出信号，正在关闭 HTTP 服务...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
