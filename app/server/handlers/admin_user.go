package handlers

import (
	"net/http"
	"strconv"
	"time"

	"kanri-portal/app/server/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserInfo struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	DeviceCode string    `json:"device_code"`
	Role       string    `json:"role"`
	IsBanned   bool      `json:"is_banned"`
	BanType    string    `json:"ban_type,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserListResponse struct {
	Users []UserInfo `json:"users"`
}

type BanRequest struct {
	Type string `json:"type" form:"type"`
}

func (a *App) UserList(c echo.Context) error {
	// 抓取 user 信息（认证）
	if _, err := a.authAdmin(c); err != nil {
		return a.er(c, http.StatusForbidden, "admin only")
	}

	rctx := c.Request().Context()

	var users []models.User
	if err := a.db.WithContext(rctx).Order("created_at DESC").Find(&users).Error; err != nil {
		a.l.Error("failed to get user list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "db error")
	}

	// 不输出密码 hash
	resUsers := []UserInfo{}
	for _, user := range users {
		resUsers = append(resUsers, UserInfo{
			ID:         user.ID,
			Username:   user.Username,
			DeviceCode: user.DeviceCode,
			Role:       user.Role,
			IsBanned:   user.IsBanned,
			BanType:    user.BanType,
			CreatedAt:  user.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, &UserListResponse{Users: resUsers})
}

// UserBan 设置或解除封禁，重复设置同一状态等同于无操作
func (a *App) UserBan(c echo.Context) error {
	// 抓取 user 信息（认证）
	if _, err := a.authAdmin(c); err != nil {
		return a.er(c, http.StatusForbidden, "admin only")
	}

	rctx := c.Request().Context()

	// 提取 ID
	idUint64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest, "invalid type")
	}
	id := uint(idUint64)

	// 绑定请求体
	var req BanRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "invalid type")
	}

	// 解析封禁状态
	var (
		isBanned bool
		banType  string
	)
	switch req.Type {
	case "unban":
		// 同时清掉 is_banned 和 ban_type
	case models.BanTypeNormal, models.BanTypePlus:
		isBanned = true
		banType = req.Type
	default:
		return a.er(c, http.StatusBadRequest, "invalid type")
	}

	// 更新用户状态
	if err := a.db.WithContext(rctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_banned": isBanned,
		"ban_type":  banType,
	}).Error; err != nil {
		a.l.Error("failed to update ban state", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "db error")
	}

	return c.JSON(http.StatusOK, &OKResponse{OK: true})
}
