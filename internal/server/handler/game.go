package handler

import (
	"context"
	"log"
	"time"

	"github.com/palemoky/roshambo/internal/game"
	"github.com/palemoky/roshambo/internal/protocol"
	"github.com/palemoky/roshambo/internal/types"
)

// 查询回合记录的超时时间
const historyQueryTimeout = 2 * time.Second

// handleJoinSeat 处理占座请求
// 载荷非法时静默丢弃；座位被占等规则冲突由会话层作为 no-op 吸收
func (h *Handler) handleJoinSeat(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinSeatPayload](msg)
	if err != nil {
		log.Printf("无效的 join_seat 载荷 (来自: %s): %v", client.GetID(), err)
		return
	}

	h.session.Join(client.GetID(), client.GetName(), payload.Seat)
}

// handleMakeChoice 处理出手势请求
func (h *Handler) handleMakeChoice(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.MakeChoicePayload](msg)
	if err != nil {
		log.Printf("无效的 make_choice 载荷 (来自: %s): %v", client.GetID(), err)
		return
	}

	choice, ok := game.ParseChoice(payload.Choice)
	if !ok {
		log.Printf("无效的手势 %q (来自: %s)", payload.Choice, client.GetID())
		return
	}

	h.session.Submit(client.GetID(), choice)
}

// handleLeaveSeat 处理离座请求，未占座时为 no-op
func (h *Handler) handleLeaveSeat(client types.ClientInterface) {
	h.session.Leave(client.GetID())
}

// handleGetHistory 处理回合记录查询
// Redis 不可用时返回空列表而不是错误
func (h *Handler) handleGetHistory(client types.ClientInterface, msg *protocol.Message) {
	limit := 0
	if len(msg.Payload) > 0 {
		payload, err := protocol.ParsePayload[protocol.GetHistoryPayload](msg)
		if err != nil {
			log.Printf("无效的 get_history 载荷 (来自: %s): %v", client.GetID(), err)
			return
		}
		limit = payload.Limit
	}

	entries := []protocol.RoundEntry{}
	if h.history != nil {
		ctx, cancel := context.WithTimeout(context.Background(), historyQueryTimeout)
		defer cancel()

		records, err := h.history.RecentRounds(ctx, limit)
		if err != nil {
			log.Printf("查询回合记录失败: %v", err)
		}
		for _, rec := range records {
			entries = append(entries, protocol.RoundEntry{
				Round:    rec.Round,
				Choices:  [2]string{string(rec.Choices[0]), string(rec.Choices[1])},
				Result:   rec.Result,
				PlayedAt: rec.PlayedAt.Unix(),
			})
		}
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgHistoryResult, protocol.HistoryResultPayload{
		Entries: entries,
	}))
}
