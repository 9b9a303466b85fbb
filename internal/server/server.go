package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"

	"github.com/palemoky/arcade-leaderboard/internal/config"
	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
	"github.com/palemoky/arcade-leaderboard/internal/logger"
	"github.com/palemoky/arcade-leaderboard/internal/page"
)

const pageCacheKey = "page"

// Server 排行榜 HTTP 服务器
type Server struct {
	config   *config.Config
	renderer *leaderboard.Renderer
	entries  []leaderboard.ScoreEntry
	mirror   leaderboard.Surface // 可选的镜像输出面（Redis）
	pages    *cache.Cache

	rateLimiter   *RateLimiter
	originChecker *OriginChecker

	pongWait time.Duration
}

// Option 服务器选项
type Option func(*Server)

// WithMirror 渲染结果同时写入 mirror
func WithMirror(mirror leaderboard.Surface) Option {
	return func(s *Server) {
		s.mirror = mirror
	}
}

// WithPongWait 设置 WebSocket 的 pong 等待时间
func WithPongWait(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.pongWait = d
		}
	}
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config, renderer *leaderboard.Renderer, entries []leaderboard.ScoreEntry, opts ...Option) *Server {
	ttl := cfg.Page.CacheTTLDuration()
	s := &Server{
		config:   cfg,
		renderer: renderer,
		entries:  entries,
		pages:    cache.New(ttl, 2*ttl),
		rateLimiter: NewRateLimiter(
			cfg.Security.RateLimit.MaxPerSecond,
			cfg.Security.RateLimit.MaxPerMinute,
			cfg.Security.RateLimit.BanDurationTime(),
		),
		originChecker: NewOriginChecker(cfg.Security.AllowedOrigins),
		pongWait:      defaultPongWait,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router 返回路由
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	// 代理头可被客户端伪造，只在部署于反向代理之后时使用
	if s.config.Server.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/style.css", s.handleStyle)
	r.Get("/health", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)
	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", handler(s.handleLeaderboard))
	})
	return r
}

// Prepare 页面就绪后执行一次渲染：生成页面缓存并写入镜像
func (s *Server) Prepare(ctx context.Context) error {
	if _, err := s.page(ctx); err != nil {
		return err
	}
	if s.mirror != nil {
		if err := s.renderer.Render(ctx, s.entries, s.mirror); err != nil {
			return fmt.Errorf("render mirror: %w", err)
		}
		slog.Info("🪞 排行榜已写入镜像", slog.Int("rows", len(s.entries)))
	}
	return nil
}

// Run 启动服务器，ctx 取消后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	if err := s.Prepare(ctx); err != nil {
		return err
	}

	addr := s.config.Server.Addr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go s.rateLimiter.cleanup(ctx)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.Server.ShutdownTimeoutDuration())
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", logger.Err(err))
		}
	}()

	slog.Info("🚀 排行榜服务已启动", slog.String("address", "http://"+addr))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	slog.Info("服务器已关闭")
	return nil
}

// page 返回渲染好的页面，缓存过期后重新渲染；cache_ttl 为 0 时每次都重新渲染
func (s *Server) page(ctx context.Context) ([]byte, error) {
	if data, ok := s.pages.Get(pageCacheKey); ok {
		return data.([]byte), nil
	}

	doc, err := page.Default()
	if err != nil {
		return nil, err
	}
	for _, sel := range []string{"title", "h1.title"} {
		if err := doc.SetText(sel, s.config.Page.Title); err != nil {
			slog.Warn("页面标题未设置", slog.String("selector", sel), logger.Err(err))
		}
	}

	if err := s.renderer.RenderTo(ctx, s.entries, doc, s.config.Page.Selector); err != nil {
		return nil, err
	}

	data, err := doc.Bytes()
	if err != nil {
		return nil, err
	}
	if s.config.Page.CacheTTL > 0 {
		s.pages.SetDefault(pageCacheKey, data)
	}
	return data, nil
}

// rows 渲染到内存输出面
func (s *Server) rows(ctx context.Context) ([]leaderboard.RankedRow, error) {
	c := leaderboard.NewCollector()
	if err := s.renderer.Render(ctx, s.entries, c); err != nil {
		return nil, err
	}
	return c.Rows(), nil
}
