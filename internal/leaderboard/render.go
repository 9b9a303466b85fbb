package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/palemoky/arcade-leaderboard/internal/apperrors"
)

// Observer 渲染观测（指标等）
type Observer interface {
	ObserveRender(rows int, elapsed time.Duration)
	ObserveMissingTarget()
}

type nopObserver struct{}

func (nopObserver) ObserveRender(int, time.Duration) {}
func (nopObserver) ObserveMissingTarget()            {}

// Renderer 排行榜渲染器
type Renderer struct {
	logger   *slog.Logger
	observer Observer
}

// Option 渲染器选项
type Option func(*Renderer)

// WithLogger 设置日志
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver 设置观测器
func WithObserver(o Observer) Option {
	return func(r *Renderer) {
		if !lo.IsNil(o) {
			r.observer = o
		}
	}
}

// NewRenderer 创建渲染器
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render 清空 target 后按名次写入所有行。
// target 为 nil（包括持有 nil 指针的接口值）时只记录错误日志，不写入任何内容，也不返回错误。
func (r *Renderer) Render(ctx context.Context, entries []ScoreEntry, target Surface) error {
	if lo.IsNil(target) {
		r.missingTarget("")
		return nil
	}

	start := time.Now()
	rows := Rank(entries)

	if err := target.Clear(ctx); err != nil {
		return fmt.Errorf("%w: clear: %w", apperrors.ErrSurfaceWrite, err)
	}
	for _, row := range rows {
		if err := target.AppendRow(ctx, row); err != nil {
			return fmt.Errorf("%w: append rank %d: %w", apperrors.ErrSurfaceWrite, row.Rank, err)
		}
	}
	if c, ok := target.(Committer); ok {
		if err := c.Commit(ctx); err != nil {
			return fmt.Errorf("%w: commit: %w", apperrors.ErrSurfaceWrite, err)
		}
	}

	r.observer.ObserveRender(len(rows), time.Since(start))
	return nil
}

// RenderTo 通过 loc 查找 selector 对应的输出面再渲染。
// 找不到容器与 target 为 nil 的处理方式相同。
func (r *Renderer) RenderTo(ctx context.Context, entries []ScoreEntry, loc Locator, selector string) error {
	if lo.IsNil(loc) {
		r.missingTarget(selector)
		return nil
	}

	target, err := loc.Locate(selector)
	if errors.Is(err, apperrors.ErrTargetNotFound) {
		r.missingTarget(selector)
		return nil
	}
	if err != nil {
		return fmt.Errorf("locate %q: %w", selector, err)
	}
	return r.Render(ctx, entries, target)
}

func (r *Renderer) missingTarget(selector string) {
	r.logger.Error("未找到排行榜容器，请检查页面结构", slog.String("selector", selector))
	r.observer.ObserveMissingTarget()
}
