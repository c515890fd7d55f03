package models

import "gorm.io/gorm"

// 角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// 封禁类型
const (
	BanTypeNormal = "normal" // 普通封禁，跳转到站外
	BanTypePlus   = "plus"   // 加重封禁，跳转到站内提示页
)

type User struct {
	gorm.Model

	// 基础信息
	Username   string `gorm:"column:username;uniqueIndex"` // 用户名，全局唯一
	DeviceCode string `gorm:"column:device_code"`          // 注册时分配的 4 位数字识别码，不保证唯一
	Role       string `gorm:"column:role;default:user"`    // 角色： user 或 admin ，创建后不通过接口变更

	// 封禁状态
	IsBanned bool   `gorm:"column:is_banned"` // 是否被封禁
	BanType  string `gorm:"column:ban_type"`  // 封禁类型，仅在 is_banned 时有意义

	// 登录认证相关
	PasswordHash string `gorm:"column:password_hash"` // 密码，使用 argon2id 储存
}
