package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/retouchlab/internal/handler"
	"github.com/retouchlab/internal/logging"
	"github.com/retouchlab/internal/metrics"
	"github.com/sirupsen/logrus"
)

const sessionName = "retouchlab_session"

// Config 汇总路由层需要的配置
type Config struct {
	SessionSecret string
	// 图片存储在本地时，UploadDir 通过 UploadURLPath 对外提供
	UploadDir     string
	UploadURLPath string
	Logger        logrus.FieldLogger
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(logger), metrics.Middleware())

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode, MaxAge: 7 * 24 * 3600})
	r.Use(sessions.Sessions(sessionName, store))

	// 静态文件服务
	if dir := strings.TrimSpace(cfg.UploadDir); dir != "" {
		urlPath := "/" + strings.Trim(cfg.UploadURLPath, "/")
		if urlPath == "/" {
			urlPath = "/uploads"
		}
		r.Static(urlPath, dir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", metrics.Handler())

	// 公开页面
	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/services", api.ShowServices)
	r.GET("/pricing", api.ShowPricing)
	r.GET("/portfolio", api.ShowPortfolio)
	r.GET("/team", api.ShowTeam)
	r.GET("/how-it-works", api.ShowHowItWorks)
	r.GET("/blog", api.ShowBlog)
	r.GET("/blog/:slug", api.ShowArticle)
	r.GET("/contact", api.ShowContact)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired(api.AuthEnabled()))
		{
			auth.GET("/dashboard", api.ShowDashboard)
		}
	}

	r.GET("/api/content/:page", api.GetContent)
	for _, method := range []string{http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions} {
		r.Handle(method, "/api/content/:page", handler.ContentMethodNotAllowed)
	}

	// API路由，写操作需要登录
	apiGroup := r.Group("/api")
	apiGroup.Use(handler.AuthRequired(api.AuthEnabled()))
	{
		apiGroup.PUT("/content/:page", api.PutContent)

		apiGroup.POST("/upload", api.UploadImage)
		apiGroup.POST("/upload/image", api.UploadImage)
		apiGroup.GET("/media", api.ListMedia)
		apiGroup.DELETE("/media/*url", api.DeleteMedia)
	}

	r.NoRoute(api.NotFound)
	return r
}
