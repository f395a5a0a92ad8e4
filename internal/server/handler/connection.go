package handler

import (
	"log"
	"time"

	"github.com/palemoky/roshambo/internal/protocol"
	"github.com/palemoky/roshambo/internal/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		log.Printf("无效的 ping 载荷 (来自: %s): %v", client.GetID(), err)
		return
	}

	// 立即回复 pong
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleGetOnlineCount 处理在线人数查询
func (h *Handler) handleGetOnlineCount(client types.ClientInterface) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgOnlineCount, protocol.OnlineCountPayload{
		Count: h.server.GetOnlineCount(),
	}))
}
