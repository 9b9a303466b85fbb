package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/arcade-leaderboard/internal/protocol"
)

// replyServer 对每个请求回复固定消息
func replyServer(t *testing.T, reply *protocol.Message) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = ws.Close() }()

		data, err := protocol.Encode(reply)
		if err != nil {
			return
		}
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
			if err := ws.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestClient_NotConnected(t *testing.T) {
	t.Parallel()

	c := NewClient("ws://127.0.0.1:1/ws")
	_, err := c.FetchRows(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, c.Close())
}

func TestClient_ConnectError(t *testing.T) {
	t.Parallel()

	c := NewClient("ws://127.0.0.1:1/ws")
	assert.Error(t, c.Connect(context.Background()))
}

func TestClient_ServerError(t *testing.T) {
	t.Parallel()

	c := NewClient(replyServer(t, protocol.NewError("render failed")))
	require.NoError(t, c.Connect(context.Background()))
	defer func() { _ = c.Close() }()

	_, err := c.FetchRows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render failed")
}

func TestClient_UnexpectedType(t *testing.T) {
	t.Parallel()

	c := NewClient(replyServer(t, protocol.NewRenderRequest()))
	require.NoError(t, c.Connect(context.Background()))
	defer func() { _ = c.Close() }()

	_, err := c.FetchRows(context.Background())
	assert.ErrorIs(t, err, protocol.ErrUnknownType)
}

func TestClient_CloseTwice(t *testing.T) {
	t.Parallel()

	c := NewClient(replyServer(t, protocol.NewRows(nil)))
	require.NoError(t, c.Connect(context.Background()))

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())

	_, err := c.FetchRows(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestClient_ServerGone(t *testing.T) {
	t.Parallel()

	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = ws.Close()
	}))
	defer ts.Close()

	c := NewClient("ws" + strings.TrimPrefix(ts.URL, "http"))
	require.NoError(t, c.Connect(context.Background()))
	defer func() { _ = c.Close() }()

	// 读协程发现连接断开后，请求立即失败而不是等待超时
	assert.Eventually(t, func() bool {
		_, err := c.FetchRows(context.Background())
		return errors.Is(err, ErrClosed)
	}, 2*time.Second, 20*time.Millisecond)
}

func TestClient_ContextCanceled(t *testing.T) {
	t.Parallel()

	// 服务端只读不回
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = ws.Close() }()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer ts.Close()

	c := NewClient("ws" + strings.TrimPrefix(ts.URL, "http"))
	require.NoError(t, c.Connect(context.Background()))
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := c.FetchRows(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
