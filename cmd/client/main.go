package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/arcade-leaderboard/internal/config"
	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
	"github.com/palemoky/arcade-leaderboard/internal/logger"
	"github.com/palemoky/arcade-leaderboard/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "", "服务器地址，为空时本地渲染内置排行榜")
	title := flag.String("title", "High Scores", "排行榜标题")
	logFile := flag.String("log", "", "日志文件路径")
	flag.Parse()

	// 终端界面占用 stdout，日志只写文件
	if *logFile != "" {
		if _, err := logger.Init(config.LogConfig{Level: "info", File: *logFile}); err != nil {
			log.Fatalf("初始化日志失败: %v", err)
		}
		defer logger.Close()
	} else {
		slog.SetDefault(logger.New(io.Discard, slog.LevelInfo, true))
	}

	var model *ui.Model
	if *serverAddr == "" {
		model = ui.NewLocalModel(leaderboard.NewRenderer(), leaderboard.DefaultScores(), *title)
	} else {
		model = ui.NewOnlineModel(fmt.Sprintf("ws://%s/ws", *serverAddr), *title)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
