package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/palemoky/arcade-leaderboard/internal/logger"
)

const httpServerReadHeaderTimeout = 5 * time.Second

// Server Prometheus 指标服务
type Server struct {
	listenAddress string
	gatherer      prometheus.Gatherer
}

// NewServer 创建指标服务
func NewServer(listenAddress string, gatherer prometheus.Gatherer) *Server {
	return &Server{
		listenAddress: listenAddress,
		gatherer:      gatherer,
	}
}

// Handler 返回 /metrics 路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Run 启动服务，ctx 取消后关闭
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.listenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			slog.Error("metrics server shutdown", logger.Err(err))
		}
	}()

	slog.Info("📈 指标服务已启动", slog.String("address", s.listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	slog.Info("指标服务已停止")
	return nil
}
