package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinSeatPayload 占座请求
type JoinSeatPayload struct {
	Seat int `json:"seat"` // 座位号 0 或 1
}

// MakeChoicePayload 出手势请求
type MakeChoicePayload struct {
	Choice string `json:"choice"` // rock/paper/scissors
}

// GetHistoryPayload 获取回合记录请求
type GetHistoryPayload struct {
	Limit int `json:"limit"` // 数量，0 表示服务端默认值
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// GameStatePayload 会话状态快照
// Seats 长度固定为 2，空座位为 null
type GameStatePayload struct {
	Seats  [2]*SeatInfo `json:"seats"`
	Round  int          `json:"round"`
	Result string       `json:"result,omitempty"` // 仅结果展示窗口期间存在
}

// SeatInfo 座位信息
// 开启手势遮蔽时，未结算回合中对手的 Choice 为空、Chosen 标记是否已出
type SeatInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Choice string `json:"choice,omitempty"`
	Chosen bool   `json:"chosen"`
}

// HistoryResultPayload 回合记录结果
type HistoryResultPayload struct {
	Entries []RoundEntry `json:"entries"`
}

// RoundEntry 单条回合记录
type RoundEntry struct {
	Round    int       `json:"round"`
	Choices  [2]string `json:"choices"`
	Result   string    `json:"result"`
	PlayedAt int64     `json:"played_at"` // Unix 秒
}

// OnlineCountPayload 在线人数
type OnlineCountPayload struct {
	Count int `json:"count"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
