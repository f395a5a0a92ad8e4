package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/roshambo/internal/config"
	"github.com/palemoky/roshambo/internal/game"
	"github.com/palemoky/roshambo/internal/server/handler"
	"github.com/palemoky/roshambo/internal/server/storage"
	"github.com/palemoky/roshambo/internal/types"
)

// Redis 连接检查与回合落库的超时时间
const redisOpTimeout = 5 * time.Second

// Server 游戏服务器，持有唯一的对局会话并向所有连接广播状态
type Server struct {
	config  *config.Config
	session *game.Session
	history types.HistoryStore
	handler *handler.Handler

	redisClient *redis.Client

	clients   map[string]*Client
	clientsMu sync.RWMutex

	originChecker  *OriginChecker
	messageLimiter *MessageRateLimiter

	// 连接数信号量
	semaphore chan struct{}

	httpServer *http.Server
}

// NewServer 创建游戏服务器
// Redis 不可达时回合记录功能降级关闭，不影响对局本身
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		config:         cfg,
		session:        game.NewSession(cfg.Game.ResultDisplayDuration()),
		clients:        make(map[string]*Client),
		originChecker:  NewOriginChecker(cfg.Security.AllowedOrigins),
		messageLimiter: NewMessageRateLimiter(cfg.Security.MessageLimit.MaxPerSecond),
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis 不可用 (%s)，回合记录功能已关闭: %v", cfg.Redis.Addr, err)
		rdb.Close()
	} else {
		s.redisClient = rdb
		s.history = storage.NewHistoryStore(rdb, cfg.Game.HistorySize)
	}

	// 状态变化时向所有连接广播，回合结算时异步落库
	s.session.SetOnChange(s.broadcastState)
	s.session.SetOnResolve(s.recordRound)

	s.handler = handler.NewHandler(handler.HandlerDeps{
		Server:  s,
		Session: s.session,
		History: s.history,
	})

	return s
}

// Start 启动 HTTP 服务
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("🚀 服务器启动于 %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown 优雅关闭服务器
func (s *Server) Shutdown(ctx context.Context) error {
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	if s.redisClient != nil {
		s.redisClient.Close()
	}

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// registerClient 注册新客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	s.clients[client.ID] = client
	count := len(s.clients)
	s.clientsMu.Unlock()

	log.Printf("✅ 客户端连接: %s (%s)，当前在线 %d", client.Name, client.ID, count)
}

// unregisterClient 注销客户端并释放连接信号量
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	_, ok := s.clients[client.ID]
	if ok {
		delete(s.clients, client.ID)
	}
	count := len(s.clients)
	s.clientsMu.Unlock()

	// 注销才释放信号量，避免读写泵还在跑时名额被提前归还
	if ok {
		<-s.semaphore
		client.Close()
		log.Printf("👋 客户端断开: %s (%s)，当前在线 %d", client.Name, client.ID, count)
	}
}

// GetOnlineCount 返回当前在线连接数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// recordRound 将结算完成的回合异步写入 Redis
func (s *Server) recordRound(rec game.RoundRecord) {
	if s.history == nil {
		return
	}
	store, ok := s.history.(*storage.HistoryStore)
	if !ok {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cancel()
		if err := store.RecordRound(ctx, rec); err != nil {
			log.Printf("回合记录写入失败: %v", err)
		}
	}()
}
