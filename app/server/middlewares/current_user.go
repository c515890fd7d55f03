package middlewares

import (
	"errors"
	"net/http"

	"kanri-portal/app/server/constants"
	"kanri-portal/app/server/models"
	"kanri-portal/app/server/sessions"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContextKeyUser 存放当前请求对应的 *models.User
const ContextKeyUser = "user"

// CurrentUser 解析会话并执行封禁拦截：
// 匿名请求直接放行；已登录用户每次都从数据库重新读取，封禁立即生效
func CurrentUser(db *gorm.DB, sm *sessions.Manager, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// 提取会话 cookie
			cookie, err := c.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			rctx := c.Request().Context()

			// 查询会话绑定的用户 ID
			userID, err := sm.Resolve(rctx, cookie.Value)
			if err != nil {
				if !errors.Is(err, sessions.ErrNotFound) {
					l.Error("failed to resolve session", zap.Error(err))
				}
				return next(c)
			}

			// 重新读取用户记录，不使用会话期间的缓存
			var user models.User
			if err := db.WithContext(rctx).First(&user, "id = ?", userID).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					l.Error("failed to load session user", zap.Uint("id", userID), zap.Error(err))
				}
				return next(c)
			}

			// 封禁拦截，任何路由都不再继续处理
			if user.IsBanned {
				if user.BanType == models.BanTypePlus {
					// 提示页本身要放行，否则会无限跳转
					if c.Request().URL.Path == constants.BannedPlusPagePath {
						return next(c)
					}
					return c.Redirect(http.StatusFound, constants.BannedPlusPagePath)
				}
				return c.Redirect(http.StatusFound, constants.BanRedirectNormal)
			}

			// 设置 context
			c.Set(ContextKeyUser, &user)

			// 继续处理
			return next(c)
		}
	}
}
