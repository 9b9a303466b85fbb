package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/palemoky/arcade-leaderboard/internal/config"
	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
	"github.com/palemoky/arcade-leaderboard/internal/logger"
	"github.com/palemoky/arcade-leaderboard/internal/metrics"
	"github.com/palemoky/arcade-leaderboard/internal/server"
	"github.com/palemoky/arcade-leaderboard/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// .env 不存在时忽略
	_ = godotenv.Load()

	// 配置文件不存在时使用默认配置
	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if _, err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			panic(r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("服务器异常退出", logger.Err(err))
		logger.Close()
		os.Exit(1)
	}
	slog.Info("👋 再见")
}

func run(ctx context.Context, cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	renderer := leaderboard.NewRenderer(
		leaderboard.WithLogger(slog.Default()),
		leaderboard.WithObserver(metrics.NewCollector(reg)),
	)

	var opts []server.Option
	if cfg.Redis.Enabled {
		rdb, err := storage.NewClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		opts = append(opts, server.WithMirror(storage.NewRedisSurface(rdb, cfg.Redis.Key)))
		slog.Info("✅ Redis 已连接", slog.String("addr", cfg.Redis.Addr))
	}

	srv := server.NewServer(cfg, renderer, leaderboard.DefaultScores(), opts...)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	if cfg.Metrics.Enabled {
		g.Go(func() error {
			return metrics.NewServer(cfg.Metrics.Addr, reg).Run(ctx)
		})
	}

	slog.Info("🏆 排行榜服务器启动中...")
	return g.Wait()
}
