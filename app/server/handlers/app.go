package handlers

import (
	"kanri-portal/app/server/config"
	"kanri-portal/app/server/sessions"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l   *zap.Logger       // 日志
	db  *gorm.DB          // 数据库
	rdb *redis.Client     // Redis ，存放会话与注册模式
	sm  *sessions.Manager // 会话管理
	cfg *config.Config    // 配置
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, sm *sessions.Manager, cfg *config.Config) *App {
	return &App{
		l:   l,
		db:  db,
		rdb: rdb,
		sm:  sm,
		cfg: cfg,
	}
}

// RegisterRoutes 绑定全部路由，静态文件由 echo 直接服务
func RegisterRoutes(e *echo.Echo, a *App) {
	// 认证
	e.POST("/api/register", a.AuthRegister)
	e.POST("/api/login", a.AuthLogin)
	e.POST("/api/logout", a.AuthLogout)
	e.GET("/api/me", a.AuthMe)

	// 管理
	e.GET("/api/users", a.UserList)
	e.POST("/api/users/:id/ban", a.UserBan)
	e.GET("/api/settings/auth-mode", a.AuthModeGet)
	e.POST("/api/settings/auth-mode", a.AuthModeSet)

	// 页面
	e.GET("/", a.PageIndex)
	e.GET("/kanri.html", a.PageAdmin)
	e.POST("/search", a.Search)
	e.GET("/healthz", a.HealthCheck)
	e.Static("/", a.cfg.System.PublicDir)
}
