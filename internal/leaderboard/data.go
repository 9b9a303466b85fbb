package leaderboard

// highScores 内置高分榜
var highScores = []ScoreEntry{
	{Name: "Ryu", Score: 55010},
	{Name: "Jax", Score: 85500},
	{Name: "ACE", Score: 99990},
	{Name: "Ali", Score: 35100},
	{Name: "KYL", Score: 60300},
	{Name: "LUC", Score: 72150},
	{Name: "T3o", Score: 38750},
	{Name: "Zen", Score: 49880},
	{Name: "D4V", Score: 29999},
	{Name: "Mia", Score: 42000},
}

// DefaultScores 返回内置高分榜的副本
func DefaultScores() []ScoreEntry {
	out := make([]ScoreEntry, len(highScores))
	copy(out, highScores)
	return out
}
