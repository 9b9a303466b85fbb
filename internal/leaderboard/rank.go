package leaderboard

import (
	"sort"

	"github.com/samber/lo"
)

// Rank 按分数降序排列（同分保持输入顺序）并计算展示字段。
// 不修改 entries。
func Rank(entries []ScoreEntry) []RankedRow {
	sorted := make([]ScoreEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	return lo.Map(sorted, func(entry ScoreEntry, i int) RankedRow {
		rank := i + 1
		return RankedRow{
			Entry:     entry,
			Rank:      rank,
			Suffix:    OrdinalSuffix(rank),
			Highlight: HighlightFor(rank),
			Score:     FormatScore(entry.Score),
			Name:      FormatName(entry.Name),
		}
	})
}
