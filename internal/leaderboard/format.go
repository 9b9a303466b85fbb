package leaderboard

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// nameWidth 街机风格的三字符名字
const nameWidth = 3

var scorePrinter = message.NewPrinter(language.AmericanEnglish)

// FormatScore 千分位格式化分数，如 99990 -> "99,990"
func FormatScore(score int) string {
	return scorePrinter.Sprintf("%d", score)
}

// FormatName 取前三个字符并转为大写
func FormatName(name string) string {
	runes := []rune(name)
	if len(runes) > nameWidth {
		runes = runes[:nameWidth]
	}
	return strings.ToUpper(string(runes))
}

// OrdinalSuffix 名次后缀。
// 固定规则：1st/2nd/3rd，其余一律 th（11、12、13 同样是 th）。
func OrdinalSuffix(rank int) string {
	switch rank {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// Ordinal 名次加后缀
func Ordinal(rank int) string {
	return strconv.Itoa(rank) + OrdinalSuffix(rank)
}

// HighlightFor 名次对应的高亮类别
func HighlightFor(rank int) Highlight {
	switch rank {
	case 1:
		return HighlightFirst
	case 2:
		return HighlightSecond
	case 3:
		return HighlightThird
	default:
		return HighlightNone
	}
}
