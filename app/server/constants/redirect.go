package constants

// 页面路径
const (
	AdminPagePath      = "/kanri.html"
	LoginPagePath      = "/login.html"
	BannedPlusPagePath = "/banned_plus.html"
)

// 跳转目标
const (
	BanRedirectNormal  = "https://google.com"   // 普通封禁：跳出站外
	SearchRedirectMiss = "https://google.com/a" // 暗号不匹配时的伪装跳转
)
