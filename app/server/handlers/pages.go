package handlers

import (
	"net/http"
	"path/filepath"

	"kanri-portal/app/server/constants"
	"kanri-portal/app/server/models"

	"github.com/labstack/echo/v4"
)

func (a *App) PageIndex(c echo.Context) error {
	return c.File(filepath.Join(a.cfg.System.PublicDir, "index.html"))
}

// PageAdmin 只对管理员开放，其他人一律跳回首页，不返回错误
func (a *App) PageAdmin(c echo.Context) error {
	user := currentUser(c)
	if user == nil || user.Role != models.RoleAdmin {
		return c.Redirect(http.StatusFound, "/")
	}

	return c.File(filepath.Join(a.cfg.System.PublicDir, "kanri.html"))
}

// Search 伪装成搜索的管理入口：
// q 等于暗号时指向管理页面，否则跳到站外
func (a *App) Search(c echo.Context) error {
	// 请求体和查询串都接受
	q := c.FormValue("q")
	if q == "" {
		q = c.QueryParam("q")
	}

	if q == a.cfg.Security.AdminSecret {
		if user := currentUser(c); user != nil && user.Role == models.RoleAdmin {
			return c.Redirect(http.StatusFound, constants.AdminPagePath)
		}
		// 先去登录，带上回跳地址
		return c.Redirect(http.StatusFound, constants.LoginPagePath+"?next="+constants.AdminPagePath)
	}

	return c.Redirect(http.StatusFound, constants.SearchRedirectMiss)
}
