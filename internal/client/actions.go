package client

import (
	"time"

	"github.com/palemoky/roshambo/internal/protocol"
)

// --- 便捷方法 ---

// JoinSeat 占座
func (c *Client) JoinSeat(seat int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgJoinSeat, protocol.JoinSeatPayload{
		Seat: seat,
	}))
}

// MakeChoice 出手势
func (c *Client) MakeChoice(choice string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgMakeChoice, protocol.MakeChoicePayload{
		Choice: choice,
	}))
}

// LeaveSeat 离座
func (c *Client) LeaveSeat() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgLeaveSeat, nil))
}

// GetHistory 查询回合记录
func (c *Client) GetHistory(limit int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetHistory, protocol.GetHistoryPayload{
		Limit: limit,
	}))
}

// GetOnlineCount 查询在线人数
func (c *Client) GetOnlineCount() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetOnlineCount, nil))
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
