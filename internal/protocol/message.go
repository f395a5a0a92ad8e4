package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgPing MessageType = "ping" // 心跳 ping

	MsgJoinSeat   MessageType = "join_seat"   // 占座
	MsgMakeChoice MessageType = "make_choice" // 出手势
	MsgLeaveSeat  MessageType = "leave_seat"  // 离座

	MsgGetHistory     MessageType = "get_history"      // 获取最近回合记录
	MsgGetOnlineCount MessageType = "get_online_count" // 获取在线人数
)

// 服务端 → 客户端 消息类型
const (
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	MsgGameState MessageType = "game_state" // 会话状态快照

	MsgHistoryResult MessageType = "history_result" // 回合记录结果
	MsgOnlineCount   MessageType = "online_count"   // 在线人数

	MsgError MessageType = "error" // 错误消息
)
