package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palemoky/arcade-leaderboard/internal/logger"
	"github.com/palemoky/arcade-leaderboard/internal/protocol"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 默认读取超时（pong 等待时间）
	defaultPongWait = 60 * time.Second

	// 消息最大大小
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// 来源在升级前由 OriginChecker 校验
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// conn 一个 WebSocket 观看端
type conn struct {
	id     string
	server *Server
	ws     *websocket.Conn
	log    *slog.Logger

	writeMu sync.Mutex
	done    chan struct{}
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	if !s.originChecker.Check(r) {
		slog.Warn("🚫 来源验证失败", slog.String("origin", r.Header.Get("Origin")), slog.String("ip", ip))
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	if !s.rateLimiter.Allow(ip) {
		slog.Warn("🚫 请求过于频繁", slog.String("ip", ip))
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket 升级失败", logger.Err(err))
		return
	}

	id := uuid.New().String()
	c := &conn{
		id:     id,
		server: s,
		ws:     ws,
		log:    slog.With(slog.String("conn_id", id), slog.String("ip", ip)),
		done:   make(chan struct{}),
	}

	c.log.Info("✅ 观看端已连接")
	go c.pingLoop()
	c.readLoop(r.Context())
}

// readLoop 读取请求，每个 render 请求返回一次当前排行
func (c *conn) readLoop(ctx context.Context) {
	defer func() {
		close(c.done)
		_ = c.ws.Close()
		c.log.Info("❌ 观看端已断开")
	}()

	c.ws.SetReadLimit(maxMessageSize)
	pongWait := c.server.pongWait
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("读取错误", logger.Err(err))
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			c.log.Warn("消息解析错误", logger.Err(err))
			c.send(protocol.NewError("invalid message"))
			continue
		}

		switch msg.Type {
		case protocol.MsgRender:
			rows, err := c.server.rows(ctx)
			if err != nil {
				c.log.Error("渲染失败", logger.Err(err))
				c.send(protocol.NewError("render failed"))
				continue
			}
			c.send(protocol.NewRows(rows))
		default:
			c.send(protocol.NewError("unsupported message: " + string(msg.Type)))
		}
	}
}

// pingLoop 定期发送 ping
func (c *conn) pingLoop() {
	// ping 间隔必须小于 pongWait
	ticker := time.NewTicker(c.server.pongWait * 9 / 10)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.writeMu.Lock()
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.ws.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// send 发送消息
func (c *conn) send(msg *protocol.Message) {
	data, err := protocol.Encode(msg)
	if err != nil {
		c.log.Error("消息编码错误", logger.Err(err))
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(websocket.BinaryMessage, data); err != nil {
		c.log.Warn("发送失败", logger.Err(err))
	}
}
