package constants

// 注册模式，由管理员切换
const (
	AuthModeFree     = "free"     // 自由注册（默认）
	AuthModeApproval = "approval" // 审批注册
)
