package constants

import "time"

const (
	SessionCookieName = "sid"
	SessionDuration   = 24 * time.Hour // 自签发起固定有效期，不随请求顺延
)

const (
	CacheKeySession  = "auth:session:%s" // %s -> session token
	CacheKeyAuthMode = "auth:settings:auth_mode"
)
