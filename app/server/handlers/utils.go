package handlers

import (
	"errors"

	"kanri-portal/app/server/middlewares"
	"kanri-portal/app/server/models"

	"github.com/labstack/echo/v4"
)

type ErrorMessage struct {
	Error string `json:"error"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

// 错误均以 {"error": ...} 的形式返回，内部原因只写日志不外泄
func (a *App) er(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, &ErrorMessage{Error: message})
}

// currentUser 取出中间件解析好的当前用户，匿名请求返回 nil
func currentUser(c echo.Context) *models.User {
	user, ok := c.Get(middlewares.ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

var errNotAdmin = errors.New("admin only")

// authAdmin 校验当前请求来自管理员
func (a *App) authAdmin(c echo.Context) (*models.User, error) {
	user := currentUser(c)
	if user == nil || user.Role != models.RoleAdmin {
		return nil, errNotAdmin
	}
	return user, nil
}
