package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"kanri-portal/app/server/config"
	"kanri-portal/app/server/constants"
	"kanri-portal/app/server/inits"
	"kanri-portal/app/server/middlewares"
	"kanri-portal/app/server/models"
	"kanri-portal/app/server/sessions"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	app *App
	e   *echo.Echo
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

// newTestEnv 搭起一套完整服务：内存 sqlite + miniredis ，并写入初始管理员
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	require.NoError(t, inits.InitData(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sm := sessions.New(rdb)

	cfg := &config.Config{}
	cfg.System.PublicDir = t.TempDir()
	cfg.Security.AdminSecret = "supersecretpass"
	for _, name := range []string{"index.html", "kanri.html", "banned_plus.html", "login.html"} {
		require.NoError(t, os.WriteFile(
			filepath.Join(cfg.System.PublicDir, name),
			[]byte("<html>"+name+"</html>"), 0o644))
	}

	app := NewApp(zap.NewNop(), db, rdb, sm, cfg)

	e := echo.New()
	e.Use(middlewares.CurrentUser(db, sm, zap.NewNop()))
	RegisterRoutes(e, app)

	return &testEnv{app: app, e: e, db: db, mr: mr}
}

func (env *testEnv) do(t *testing.T, method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// sessionCookie 从响应中取出会话 cookie
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	res := http.Response{Header: rec.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == constants.SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}

	t.Fatal("session cookie not set")
	return nil
}

func (env *testEnv) register(t *testing.T, username, password string) (*http.Cookie, string) {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.OK)

	return sessionCookie(t, rec), body.DeviceCode
}

func (env *testEnv) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	return sessionCookie(t, rec)
}
