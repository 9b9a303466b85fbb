package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  string
	}{
		{0, "0"},
		{500, "500"},
		{999, "999"},
		{1000, "1,000"},
		{29999, "29,999"},
		{99990, "99,990"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatScore(tt.score), "score %d", tt.score)
	}
}

func TestFormatName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"ACE", "ACE"},
		{"Ryu", "RYU"},
		{"Al", "AL"},
		{"", ""},
		{"Zangief", "ZAN"},
		{"t3o", "T3O"},
		{"éva", "ÉVA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatName(tt.name), "name %q", tt.name)
	}
}

func TestOrdinal(t *testing.T) {
	t.Parallel()

	// 11、12、13 不做英语例外处理
	tests := map[int]string{
		1:  "1st",
		2:  "2nd",
		3:  "3rd",
		4:  "4th",
		11: "11th",
		12: "12th",
		13: "13th",
		21: "21th",
		22: "22th",
	}

	for rank, want := range tests {
		assert.Equal(t, want, Ordinal(rank))
	}
}

func TestHighlightFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, HighlightFirst, HighlightFor(1))
	assert.Equal(t, HighlightSecond, HighlightFor(2))
	assert.Equal(t, HighlightThird, HighlightFor(3))
	assert.Equal(t, HighlightNone, HighlightFor(4))
	assert.Equal(t, HighlightNone, HighlightFor(10))

	assert.Equal(t, "rank-1", HighlightFirst.String())
	assert.Equal(t, "rank-2", HighlightSecond.String())
	assert.Equal(t, "rank-3", HighlightThird.String())
	assert.Empty(t, HighlightNone.String())
}
