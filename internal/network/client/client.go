package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
	"github.com/palemoky/arcade-leaderboard/internal/protocol"
)

const (
	writeWait        = 10 * time.Second
	handshakeTimeout = 10 * time.Second
	responseTimeout  = 10 * time.Second
)

var (
	// ErrClosed 连接已关闭
	ErrClosed = errors.New("connection closed")
	// ErrTimeout 等待响应超时
	ErrTimeout = errors.New("response timeout")
)

// Client WebSocket 客户端
type Client struct {
	ServerURL string

	mu      sync.Mutex // 保护 conn 及读协程状态
	conn    *websocket.Conn
	replies chan []byte
	done    chan struct{}
	readErr error

	reqMu sync.Mutex // 同一时间只有一个请求在途
}

// NewClient 创建客户端
func NewClient(serverURL string) *Client {
	return &Client{ServerURL: serverURL}
}

// Connect 连接服务器并启动读协程
func (c *Client) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, c.ServerURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.ServerURL, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	replies := make(chan []byte, 1)
	done := make(chan struct{})

	c.mu.Lock()
	c.conn = conn
	c.replies = replies
	c.done = done
	c.readErr = nil
	c.mu.Unlock()

	go c.readPump(conn, replies, done)
	return nil
}

// readPump 持续读取连接：控制帧（ping/close）在读取过程中被处理，
// 数据帧交给等待中的 FetchRows
func (c *Client) readPump(conn *websocket.Conn, replies chan<- []byte, done chan struct{}) {
	defer close(done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.readErr = err
			}
			c.mu.Unlock()
			return
		}

		select {
		case replies <- data:
		default:
			// 没有请求在等待，丢弃
		}
	}
}

// FetchRows 请求一次渲染结果
func (c *Client) FetchRows(ctx context.Context) ([]leaderboard.RankedRow, error) {
	c.reqMu.Lock()
	defer c.reqMu.Unlock()

	c.mu.Lock()
	conn, replies, done := c.conn, c.replies, c.done
	c.mu.Unlock()

	if conn == nil {
		return nil, ErrClosed
	}

	select {
	case <-done:
		return nil, c.closedErr()
	default:
	}

	// 丢弃之前超时请求遗留的响应
	select {
	case <-replies:
	default:
	}

	data, err := protocol.Encode(protocol.NewRenderRequest())
	if err != nil {
		return nil, err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return nil, fmt.Errorf("send render request: %w", err)
	}

	timer := time.NewTimer(responseTimeout)
	defer timer.Stop()

	var reply []byte
	select {
	case reply = <-replies:
	case <-done:
		return nil, c.closedErr()
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrTimeout
	}

	msg, err := protocol.Decode(reply)
	if err != nil {
		return nil, err
	}
	switch msg.Type {
	case protocol.MsgRows:
		return msg.Rows, nil
	case protocol.MsgError:
		return nil, fmt.Errorf("server error: %s", msg.Error)
	default:
		return nil, fmt.Errorf("%w: %q", protocol.ErrUnknownType, msg.Type)
	}
}

// closedErr 读协程退出后的错误，带上读取失败原因
func (c *Client) closedErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr == nil {
		return ErrClosed
	}
	return fmt.Errorf("%w: %w", ErrClosed, c.readErr)
}

// Close 关闭连接，读协程随之退出
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	err := c.conn.Close()
	c.conn = nil
	return err
}
