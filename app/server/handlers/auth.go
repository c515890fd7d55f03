package handlers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"

	"kanri-portal/app/server/constants"
	"kanri-portal/app/server/models"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type RegisterResponse struct {
	OK         bool   `json:"ok"`
	DeviceCode string `json:"device_code"`
}

type MeUser struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	DeviceCode string `json:"device_code"`
}

type MeResponse struct {
	LoggedIn bool    `json:"loggedIn"`
	User     *MeUser `json:"user,omitempty"`
}

// 用户名不存在时也跑一次同等开销的校验，避免通过响应时间枚举用户名
var dummyHash string

func init() {
	dummyHash, _ = argon2id.CreateHash("dummy", argon2id.DefaultParams)
}

// 生成 4 位数字识别码，均匀随机，不检查用户间重复
func randomDeviceCode() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

// establishSession 签发会话并写入 cookie
func (a *App) establishSession(c echo.Context, userID uint) error {
	token, err := a.sm.Create(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(constants.SessionDuration.Seconds()),
		HttpOnly: true,
	})

	return nil
}

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req AuthRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "username and password required")
	}

	// 没有写用户名或密码
	if req.Username == "" || req.Password == "" {
		return a.er(c, http.StatusBadRequest, "username and password required")
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "server error")
	}

	// 创建用户
	user := models.User{
		Username:     req.Username,
		DeviceCode:   randomDeviceCode(),
		Role:         models.RoleUser,
		PasswordHash: passwordHash,
	}
	if err := a.db.WithContext(rctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return a.er(c, http.StatusConflict, "username exists")
		}
		a.l.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "db error")
	}

	// 注册即登录
	if err := a.establishSession(c, user.ID); err != nil {
		a.l.Error("failed to establish session", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "server error")
	}

	return c.JSON(http.StatusOK, &RegisterResponse{
		OK:         true,
		DeviceCode: user.DeviceCode,
	})
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req AuthRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest, "username and password required")
	}

	// 没有写用户名或密码
	if req.Username == "" || req.Password == "" {
		return a.er(c, http.StatusBadRequest, "username and password required")
	}

	var user models.User
	if err := a.db.WithContext(rctx).First(&user, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 与密码错误走相同的分支和耗时
			_, _, _ = argon2id.CheckHash(req.Password, dummyHash)
			return a.er(c, http.StatusUnauthorized, "invalid credentials")
		}
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "db error")
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(req.Password, user.PasswordHash); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "server error")
	} else if !match {
		// 密码不一致，与用户不存在返回同样的错误
		return a.er(c, http.StatusUnauthorized, "invalid credentials")
	}

	// 建立会话
	if err := a.establishSession(c, user.ID); err != nil {
		a.l.Error("failed to establish session", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, "server error")
	}

	return c.JSON(http.StatusOK, &OKResponse{OK: true})
}

// AuthLogout 销毁当前会话，没有会话也返回成功
func (a *App) AuthLogout(c echo.Context) error {
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		if err := a.sm.Destroy(c.Request().Context(), cookie.Value); err != nil {
			a.l.Error("failed to destroy session", zap.Error(err))
		}
	}

	// 让客户端删除 cookie
	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, &OKResponse{OK: true})
}

// AuthMe 返回当前登录状态，不包含密码 hash 与封禁字段
func (a *App) AuthMe(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return c.JSON(http.StatusOK, &MeResponse{LoggedIn: false})
	}

	return c.JSON(http.StatusOK, &MeResponse{
		LoggedIn: true,
		User: &MeUser{
			ID:         user.ID,
			Username:   user.Username,
			Role:       user.Role,
			DeviceCode: user.DeviceCode,
		},
	})
}
