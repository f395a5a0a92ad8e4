package server

import (
	"github.com/palemoky/roshambo/internal/game"
	"github.com/palemoky/roshambo/internal/protocol"
)

// broadcastState 将最新对局状态广播给所有连接
// 开启手势隐藏时每个连接收到按其视角过滤的快照
func (s *Server) broadcastState(snap game.Snapshot) {
	s.clientsMu.RLock()
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.clientsMu.RUnlock()

	mask := s.config.Game.MaskChoices
	for _, c := range clients {
		payload := buildGameState(snap, c.ID, mask)
		c.SendMessage(protocol.MustNewMessage(protocol.MsgGameState, payload))
	}
}

// sendState 将当前对局状态单发给一个客户端
func (s *Server) sendState(c *Client) {
	snap := s.session.Snapshot()
	payload := buildGameState(snap, c.ID, s.config.Game.MaskChoices)
	c.SendMessage(protocol.MustNewMessage(protocol.MsgGameState, payload))
}

// buildGameState 将会话快照转换为协议载荷
// mask 开启且回合未结算时，隐藏其他座位的手势内容，只保留已出手标记
func buildGameState(snap game.Snapshot, viewerID string, mask bool) protocol.GameStatePayload {
	payload := protocol.GameStatePayload{
		Round:  snap.Round,
		Result: snap.Result,
	}

	hide := mask && snap.Result == ""
	for i, seat := range snap.Seats {
		if seat == nil {
			continue
		}
		info := &protocol.SeatInfo{
			ID:     seat.OccupantID,
			Name:   seat.Name,
			Chosen: seat.Choice != "",
		}
		if !hide || seat.OccupantID == viewerID {
			info.Choice = string(seat.Choice)
		}
		payload.Seats[i] = info
	}
	return payload
}
