package handlers

import (
	"context"
	"errors"
	"net/http"

	"kanri-portal/app/server/constants"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type AuthModeRequest struct {
	Mode string `json:"mode" form:"mode"`
}

type AuthModeResponse struct {
	OK   bool   `json:"ok"`
	Mode string `json:"mode"`
}

// getAuthMode 读取注册模式，没有设置过时返回默认值
func (a *App) getAuthMode(ctx context.Context) (string, error) {
	mode, err := a.rdb.Get(ctx, constants.CacheKeyAuthMode).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return constants.AuthModeFree, nil
		}
		return "", err
	}
	return mode, nil
}

func (a *App) AuthModeGet(c echo.Context) error {
	// 抓取 user 信息（认证）
	if _, err := a.authAdmin(c); err != nil {
		return a.er(c, http.StatusForbidden, "admin only")
	}

	mode, err := a.getAuthMode(c.Request().Context())
	if err != nil {
		a.l.Error("failed to get auth mode", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "db error")
	}

	return c.JSON(http.StatusOK, &AuthModeResponse{OK: true, Mode: mode})
}

func (a *App) AuthModeSet(c echo.Context) error {
	// 抓取 user 信息（认证）
	if _, err := a.authAdmin(c); err != nil {
		return a.er(c, http.StatusForbidden, "admin only")
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req AuthModeRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "invalid")
	}

	// 非法取值不改动现有模式
	if req.Mode != constants.AuthModeFree && req.Mode != constants.AuthModeApproval {
		return a.er(c, http.StatusBadRequest, "invalid")
	}

	// 写入 redis ，进程重启后仍然保留
	if err := a.rdb.Set(rctx, constants.CacheKeyAuthMode, req.Mode, 0).Err(); err != nil {
		a.l.Error("failed to set auth mode", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "db error")
	}

	return c.JSON(http.StatusOK, &AuthModeResponse{OK: true, Mode: req.Mode})
}
