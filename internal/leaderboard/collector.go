package leaderboard

import "context"

// Collector 内存输出面
type Collector struct {
	rows []RankedRow
}

// NewCollector 创建内存输出面
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Clear(context.Context) error {
	c.rows = c.rows[:0]
	return nil
}

func (c *Collector) AppendRow(_ context.Context, row RankedRow) error {
	c.rows = append(c.rows, row)
	return nil
}

// Rows 返回已写入行的副本
func (c *Collector) Rows() []RankedRow {
	out := make([]RankedRow, len(c.rows))
	copy(out, c.rows)
	return out
}
