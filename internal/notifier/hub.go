package notifier

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/config"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/jwt"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Message 推送给客户端的消息
type Message struct {
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
	SentAt  int64       `json:"sent_at"`
}

// Hub WebSocket通知中心，实现Notifier
//
// 同一用户允许多个连接（多端登录），按UserID广播。
type Hub struct {
	mu       sync.RWMutex
	clients  map[uint]map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	log      *logrus.Logger
}

// NewHub 创建通知中心
func NewHub() *Hub {
	cfg := config.GetConfig()
	allowedOrigins := cfg.CORS.AllowOrigins

	return &Hub{
		clients: make(map[uint]map[*websocket.Conn]struct{}),
		log:     logger.GetLogger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024 * 4,
			WriteBufferSize: 1024 * 4,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				logger.GetLogger().Warnf("WebSocket连接被拒绝，非法Origin: %s", origin)
				return false
			},
		},
	}
}

// Notify 向指定用户的所有连接推送通知
func (h *Hub) Notify(userID uint, kind string, payload interface{}) error {
	message := Message{
		Kind:    kind,
		Payload: payload,
		SentAt:  time.Now().Unix(),
	}
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients[userID]))
	for conn := range h.clients[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Warnf("通知推送失败，移除连接: user_id=%d, err=%v", userID, err)
			h.remove(userID, conn)
		}
	}
	return nil
}

// Serve 处理WebSocket连接请求
//
// WebSocket不支持自定义header，token从查询参数传入。
func (h *Hub) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少认证令牌"})
		return
	}

	claims, err := jwt.GetJWTManager().VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的令牌"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorf("WebSocket升级失败: %v", err)
		return
	}

	h.mu.Lock()
	if h.clients[claims.UserID] == nil {
		h.clients[claims.UserID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[claims.UserID][conn] = struct{}{}
	h.mu.Unlock()

	h.log.Infof("WebSocket连接建立: user_id=%d", claims.UserID)

	// 读循环只用于感知连接关闭
	go func() {
		defer h.remove(claims.UserID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) remove(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	if conns, ok := h.clients[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
	h.mu.Unlock()
	conn.Close()
}
