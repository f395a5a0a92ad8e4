package handler

import (
	"log"

	"github.com/palemoky/roshambo/internal/game"
	"github.com/palemoky/roshambo/internal/protocol"
	"github.com/palemoky/roshambo/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server  types.ServerInterface
	Session *game.Session
	History types.HistoryStore // 可为 nil（Redis 不可用时降级）
}

// Handler 消息处理器
type Handler struct {
	server   types.ServerInterface
	session  *game.Session
	history  types.HistoryStore
	handlers map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:  deps.Server,
		session: deps.Session,
		history: deps.History,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 游戏操作
		protocol.MsgJoinSeat:   h.handleJoinSeat,
		protocol.MsgMakeChoice: h.handleMakeChoice,
		protocol.MsgLeaveSeat:  func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveSeat(c) },

		// 信息查询
		protocol.MsgGetHistory:     h.handleGetHistory,
		protocol.MsgGetOnlineCount: func(c types.ClientInterface, _ *protocol.Message) { h.handleGetOnlineCount(c) },
	}
}

// Handle 处理消息
// 未知消息类型按协议约定静默丢弃，只记日志，不回错误也不断连接
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if fn, ok := h.handlers[msg.Type]; ok {
		fn(client, msg)
		return
	}

	log.Printf("⚠️ 未知消息类型: '%s' (来自: %s)", msg.Type, client.GetID())
}
