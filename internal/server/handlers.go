package server

import (
	"log/slog"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
	"github.com/palemoky/arcade-leaderboard/internal/logger"
	"github.com/palemoky/arcade-leaderboard/internal/page"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// rowDTO 排行行（JSON）
type rowDTO struct {
	Rank      int    `json:"rank"`
	Ordinal   string `json:"ordinal"`
	Score     string `json:"score"`
	Name      string `json:"name"`
	Highlight string `json:"highlight,omitempty"`
}

type leaderboardResponse struct {
	Rows []rowDTO `json:"rows"`
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			slog.Error("request failed", slog.String("path", r.URL.Path), logger.Err(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// handlePage 排行榜页面
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data, err := s.page(r.Context())
	if err != nil {
		slog.Error("页面渲染失败", logger.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

// handleStyle 样式表
func (s *Server) handleStyle(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(page.Stylesheet())
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleLeaderboard 排行行 JSON
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) error {
	rows, err := s.rows(r.Context())
	if err != nil {
		return err
	}

	resp := leaderboardResponse{
		Rows: lo.Map(rows, func(row leaderboard.RankedRow, _ int) rowDTO {
			return rowDTO{
				Rank:      row.Rank,
				Ordinal:   row.Ordinal(),
				Score:     row.Score,
				Name:      row.Name,
				Highlight: row.Highlight.String(),
			}
		}),
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}
