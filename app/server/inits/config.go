package inits

import (
	"fmt"
	"os"
	"strings"

	"kanri-portal/app/server/config"
)

func Config() (cfg *config.Config, err error) {
	// 手动配置映射，全部来自环境变量
	cfg = &config.Config{}

	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":3000" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if publicDir, exist := os.LookupEnv("PUBLIC_DIR"); !exist {
		cfg.System.PublicDir = "public" // 默认静态页面目录
	} else {
		cfg.System.PublicDir = publicDir
	}

	if adminPass, exist := os.LookupEnv("ADMIN_PASS"); !exist {
		cfg.Security.AdminSecret = "supersecretpass" // 默认暗号，部署时务必更换
	} else {
		cfg.Security.AdminSecret = adminPass
	}

	return cfg, nil
}
