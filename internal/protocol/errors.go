package protocol

// 错误码
// 协议约定格式错误和规则冲突都静默丢弃，唯一会下发的错误是速率限制警告
const (
	ErrCodeRateLimit = 1002
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeRateLimit: "too many requests",
}
