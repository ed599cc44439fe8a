package router

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"Lee_Directory/internal/config"
	"Lee_Directory/internal/handler"
	"Lee_Directory/internal/middleware"
	"Lee_Directory/internal/pkg"
	"Lee_Directory/internal/repository/redis"
	"Lee_Directory/internal/service"
	"Lee_Directory/internal/web"
)

// Deps 由 main 组装好传入；Redis 和 Events 可为 nil
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *goredis.Client
	Events service.EventSender
}

func InitRouter(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	if cfg.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	signer, err := pkg.NewSessionSigner(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("session signer: %w", err)
	}
	var attempts service.LoginAttempts
	if d.Redis != nil {
		attempts = &redis.LoginAttemptRepository{RDB: d.Redis}
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	authSvc := service.NewAuthService(service.AuthConfig{
		Username:     cfg.Auth.AdminUsername,
		PasswordHash: cfg.Auth.AdminPasswordHash,
		MaxFailures:  cfg.Login.MaxFailures,
		LockWindow:   cfg.Login.LockWindow,
	}, signer, attempts)
	communitySvc := service.NewCommunityService(d.DB, d.Events)
	memberSvc := service.NewMemberService(d.DB, d.Events)
	statsSvc := service.NewStatsService(d.DB)
	exportSvc := service.NewExportService(d.DB)

	auth := handler.NewAuthHandler(authSvc, cfg.Auth.CookieSecure)
	community := handler.NewCommunityHandler(communitySvc, cfg.BaseURL)
	member := handler.NewMemberHandler(memberSvc, exportSvc)
	stats := handler.NewStatsHandler(statsSvc)
	public := handler.NewPublicHandler(communitySvc, memberSvc, cfg.BaseURL)
	health := handler.NewHealthHandler(d.DB, d.Redis)
	page := handler.NewPageHandler(communitySvc, memberSvc, statsSvc, authSvc, cfg.Auth.CookieSecure)

	r := gin.New()
	r.Use(middleware.AccessLog(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	store := cookie.NewStore([]byte(cfg.Auth.SessionSecret))
	store.Options(sessions.Options{Path: "/admin", MaxAge: 600, HttpOnly: true, Secure: cfg.Auth.CookieSecure, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("directory-flow", store))

	api := r.Group("/api")
	api.GET("/health", health.Check)

	// 登录相关接口
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/logout", auth.Logout)
	}

	// 管理端接口
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAPI(authSvc))
	{
		adminGroup.GET("/communities", community.List)
		adminGroup.POST("/communities", community.Create)
		adminGroup.PATCH("/communities/:id", community.Update)
		adminGroup.DELETE("/communities/:id", community.Delete)

		adminGroup.GET("/members", member.List)
		adminGroup.GET("/members/export", member.Export)
		adminGroup.PATCH("/members/:id", member.Update)
		adminGroup.DELETE("/members/:id", member.Delete)

		adminGroup.GET("/stats", stats.Get)
	}

	// 公开接口
	publicGroup := api.Group("/community/:slug")
	{
		publicGroup.GET("", public.GetCommunity)
		publicGroup.GET("/members", public.ListMembers)
		publicGroup.POST("/members", public.SubmitMember)
		publicGroup.GET("/members/:id", public.GetMember)
	}

	// 公开页面
	pageGroup := r.Group("/c/:slug")
	{
		pageGroup.GET("/form", page.Form)
		pageGroup.GET("/list", page.List)
		pageGroup.GET("/share/:id", page.Share)
	}

	// 管理端页面，登录页本身不拦
	r.GET(middleware.LoginPath, page.LoginForm)
	r.POST(middleware.LoginPath, page.Login)
	adminPages := r.Group("/admin")
	adminPages.Use(middleware.AdminPage(authSvc))
	{
		adminPages.GET("/logout", page.Logout)
		adminPages.GET("/dashboard", page.Dashboard)
		adminPages.GET("/communities", page.Communities)
		adminPages.GET("/members", page.Members)
	}
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	return r, nil
}
