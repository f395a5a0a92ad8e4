package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/roshambo/internal/game"
)

const (
	// Redis key
	historyKey = "roshambo:history"

	// 记录过期时间，服务重启后旧局的记录不需要长期保留
	historyExpiration = 24 * time.Hour
)

// storedRound 回合记录的序列化格式
type storedRound struct {
	Round    int       `json:"round"`
	Choices  [2]string `json:"choices"`
	Result   string    `json:"result"`
	PlayedAt int64     `json:"played_at"`
}

// HistoryStore 最近回合记录的 Redis 存储
// 只做辅助查询，会话状态本身永不落盘
type HistoryStore struct {
	client *redis.Client
	size   int
}

// NewHistoryStore 创建回合记录存储，size 为保留条数上限
func NewHistoryStore(client *redis.Client, size int) *HistoryStore {
	if size <= 0 {
		size = 50
	}
	return &HistoryStore{client: client, size: size}
}

// RecordRound 追加一条回合记录并裁剪到上限
func (hs *HistoryStore) RecordRound(ctx context.Context, rec game.RoundRecord) error {
	data, err := json.Marshal(storedRound{
		Round:    rec.Round,
		Choices:  [2]string{string(rec.Choices[0]), string(rec.Choices[1])},
		Result:   rec.Result,
		PlayedAt: rec.PlayedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal round record: %w", err)
	}

	pipe := hs.client.TxPipeline()
	pipe.LPush(ctx, historyKey, data)
	pipe.LTrim(ctx, historyKey, 0, int64(hs.size-1))
	pipe.Expire(ctx, historyKey, historyExpiration)
	_, err = pipe.Exec(ctx)
	return err
}

// RecentRounds 返回最近的回合记录，新的在前
// limit 不合法或超过上限时使用存储上限；坏记录跳过不报错
func (hs *HistoryStore) RecentRounds(ctx context.Context, limit int) ([]game.RoundRecord, error) {
	if limit <= 0 || limit > hs.size {
		limit = hs.size
	}

	vals, err := hs.client.LRange(ctx, historyKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]game.RoundRecord, 0, len(vals))
	for _, v := range vals {
		var sr storedRound
		if err := json.Unmarshal([]byte(v), &sr); err != nil {
			continue
		}
		records = append(records, game.RoundRecord{
			Round:    sr.Round,
			Choices:  [2]game.Choice{game.Choice(sr.Choices[0]), game.Choice(sr.Choices[1])},
			Result:   sr.Result,
			PlayedAt: time.Unix(sr.PlayedAt, 0),
		})
	}
	return records, nil
}
