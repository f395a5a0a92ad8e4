package server

import (
	"net/http"
	"sync"
	"time"
)

// OriginChecker 校验 WebSocket 握手的 Origin 头
type OriginChecker struct {
	allowed  map[string]bool
	allowAll bool
}

// NewOriginChecker 创建 Origin 校验器
// 允许列表包含 "*" 时放行所有来源
func NewOriginChecker(origins []string) *OriginChecker {
	oc := &OriginChecker{allowed: make(map[string]bool)}
	for _, origin := range origins {
		if origin == "*" {
			oc.allowAll = true
		}
		oc.allowed[origin] = true
	}
	return oc
}

// CheckOrigin 判断请求来源是否被允许
// 无 Origin 头的请求（如 TUI 客户端、curl）直接放行
func (oc *OriginChecker) CheckOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if oc.allowAll {
		return true
	}
	return oc.allowed[origin]
}

// MessageRateLimiter 按客户端限制每秒消息数
type MessageRateLimiter struct {
	mu        sync.Mutex
	maxPerSec int
	counters  map[string]*messageCounter
}

type messageCounter struct {
	windowStart time.Time
	count       int
	warnings    int
}

// NewMessageRateLimiter 创建消息速率限制器
func NewMessageRateLimiter(maxPerSecond int) *MessageRateLimiter {
	return &MessageRateLimiter{
		maxPerSec: maxPerSecond,
		counters:  make(map[string]*messageCounter),
	}
}

// AllowMessage 判断客户端本条消息是否在速率限制内
// 超限时累计警告次数并返回 false
func (l *MessageRateLimiter) AllowMessage(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, ok := l.counters[clientID]
	if !ok {
		c = &messageCounter{windowStart: now}
		l.counters[clientID] = c
	}

	// 滑动到新的一秒窗口
	if now.Sub(c.windowStart) >= time.Second {
		c.windowStart = now
		c.count = 0
	}

	c.count++
	if c.count > l.maxPerSec {
		c.warnings++
		return false
	}
	return true
}

// WarningCount 返回客户端累计的超速警告次数
func (l *MessageRateLimiter) WarningCount(clientID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.counters[clientID]; ok {
		return c.warnings
	}
	return 0
}

// RemoveClient 清理断开客户端的计数器
func (l *MessageRateLimiter) RemoveClient(clientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counters, clientID)
}
