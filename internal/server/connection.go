package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/palemoky/roshambo/internal/protocol"
)

// handleWebSocket 处理 WebSocket 连接升级
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// 连接数量限制
	select {
	case s.semaphore <- struct{}{}:
	default:
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.CheckOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		<-s.semaphore
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	client.IP = r.RemoteAddr
	s.registerClient(client)

	go client.WritePump()
	go client.ReadPump()

	// 先发身份，再发当前对局状态，新连接立即可见全貌
	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   client.ID,
		PlayerName: client.Name,
	}))
	s.sendState(client)
}

// handleHealth 健康检查
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
