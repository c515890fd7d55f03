package config

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串
		RedisConnectionString string // Redis 数据库的连接字符串
		PublicDir             string // 静态页面所在目录
	}
	Security struct {
		AdminSecret string // 管理入口暗号，通过 /search 提交时跳转进管理页面
	}
}
