package types

import (
	"context"

	"github.com/palemoky/roshambo/internal/game"
	"github.com/palemoky/roshambo/internal/protocol"
)

// ServerInterface 定义服务器接口（用于打破循环依赖）
type ServerInterface interface {
	GetOnlineCount() int
}

// ClientInterface 定义客户端接口
type ClientInterface interface {
	GetID() string
	GetName() string
	SendMessage(msg *protocol.Message)
	Close()
}

// HistoryStore 回合记录存储接口
type HistoryStore interface {
	RecentRounds(ctx context.Context, limit int) ([]game.RoundRecord, error)
}
