// Package leaderboard ranks player scores and renders them into an output surface.
package leaderboard

import "context"

// ScoreEntry 玩家成绩
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Highlight 前三名高亮类别
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightFirst
	HighlightSecond
	HighlightThird
)

// String 返回样式标签（与页面 CSS 类名一致）
func (h Highlight) String() string {
	switch h {
	case HighlightFirst:
		return "rank-1"
	case HighlightSecond:
		return "rank-2"
	case HighlightThird:
		return "rank-3"
	default:
		return ""
	}
}

// RankedRow 排名后的展示行
type RankedRow struct {
	Entry     ScoreEntry `json:"entry"`
	Rank      int        `json:"rank"`
	Suffix    string     `json:"suffix"`
	Highlight Highlight  `json:"highlight"`
	Score     string     `json:"score"` // 格式化后的分数
	Name      string     `json:"name"`  // 截断并大写后的名字
}

// Ordinal 返回带后缀的名次，如 "1st"
func (r RankedRow) Ordinal() string {
	return Ordinal(r.Rank)
}

// Surface 输出面：渲染前清空，然后按名次逐行追加
type Surface interface {
	Clear(ctx context.Context) error
	AppendRow(ctx context.Context, row RankedRow) error
}

// Committer 可选：输出面在全部行写入后统一提交，读者不会看到写了一半的表
type Committer interface {
	Commit(ctx context.Context) error
}

// Locator 按选择器查找输出面，找不到时返回 apperrors.ErrTargetNotFound
type Locator interface {
	Locate(selector string) (Surface, error)
}
