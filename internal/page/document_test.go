package page

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/arcade-leaderboard/internal/apperrors"
	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
)

func renderDefault(t *testing.T, doc *Document, entries []leaderboard.ScoreEntry) string {
	t.Helper()
	r := leaderboard.NewRenderer(leaderboard.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, r.RenderTo(context.Background(), entries, doc, DefaultSelector))
	out, err := doc.Bytes()
	require.NoError(t, err)
	return string(out)
}

func TestDocument_RenderReplacesPlaceholderRows(t *testing.T) {
	t.Parallel()

	doc, err := Default()
	require.NoError(t, err)

	out := renderDefault(t, doc, []leaderboard.ScoreEntry{
		{Name: "Ryu", Score: 55010},
		{Name: "Jax", Score: 85500},
		{Name: "ACE", Score: 99990},
	})

	assert.NotContains(t, out, "AAA")
	assert.NotContains(t, out, "00,000")
	assert.Contains(t, out, `<tr class="rank-1"><td class="rank">1st</td><td class="points">99,990</td><td class="name">ACE</td></tr>`)
	assert.Contains(t, out, `<tr class="rank-2"><td class="rank">2nd</td><td class="points">85,500</td><td class="name">JAX</td></tr>`)
	assert.Contains(t, out, `<tr class="rank-3"><td class="rank">3rd</td><td class="points">55,010</td><td class="name">RYU</td></tr>`)

	first := strings.Index(out, "ACE")
	second := strings.Index(out, "JAX")
	third := strings.Index(out, "RYU")
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestDocument_RowsBeyondTopThreeHaveNoClass(t *testing.T) {
	t.Parallel()

	doc, err := Default()
	require.NoError(t, err)

	out := renderDefault(t, doc, leaderboard.DefaultScores())

	assert.Contains(t, out, `<tr><td class="rank">4th</td><td class="points">60,300</td><td class="name">KYL</td></tr>`)
	assert.Contains(t, out, `<tr><td class="rank">10th</td><td class="points">29,999</td><td class="name">D4V</td></tr>`)
}

func TestDocument_Idempotent(t *testing.T) {
	t.Parallel()

	once, err := Default()
	require.NoError(t, err)
	twice, err := Default()
	require.NoError(t, err)

	entries := leaderboard.DefaultScores()
	a := renderDefault(t, once, entries)
	_ = renderDefault(t, twice, entries)
	b := renderDefault(t, twice, entries)

	assert.Equal(t, a, b)

	target, err := twice.Locate(DefaultSelector)
	require.NoError(t, err)
	assert.Equal(t, len(entries), target.(*TableBody).Len())
}

func TestDocument_EmptyEntriesClearsRows(t *testing.T) {
	t.Parallel()

	doc, err := Default()
	require.NoError(t, err)

	_ = renderDefault(t, doc, nil)

	target, err := doc.Locate(DefaultSelector)
	require.NoError(t, err)
	assert.Equal(t, 0, target.(*TableBody).Len())
}

func TestDocument_MissingTarget(t *testing.T) {
	t.Parallel()

	src := `<html><body><table class="other"><tbody><tr><td>keep</td></tr></tbody></table></body></html>`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	_, err = doc.Locate(DefaultSelector)
	assert.ErrorIs(t, err, apperrors.ErrTargetNotFound)

	var logs bytes.Buffer
	r := leaderboard.NewRenderer(leaderboard.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, r.RenderTo(context.Background(), leaderboard.DefaultScores(), doc, DefaultSelector))

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), "keep")
	assert.NotContains(t, string(out), "ACE")
	assert.Contains(t, logs.String(), "level=ERROR")
}

func TestDocument_InvalidSelector(t *testing.T) {
	t.Parallel()

	doc, err := Default()
	require.NoError(t, err)

	_, err = doc.Locate("[[[")
	assert.ErrorIs(t, err, apperrors.ErrInvalidSelector)
}

func TestDocument_SetText(t *testing.T) {
	t.Parallel()

	doc, err := Default()
	require.NoError(t, err)

	require.NoError(t, doc.SetText("title", "Hall of Fame"))
	require.NoError(t, doc.SetText("h1.title", "Hall of Fame"))

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), "<title>Hall of Fame</title>")
	assert.Contains(t, string(out), `<h1 class="title">Hall of Fame</h1>`)
}

func TestStylesheet(t *testing.T) {
	t.Parallel()

	css := string(Stylesheet())
	assert.Contains(t, css, ".leaderboard tr.rank-1")
	assert.Contains(t, css, ".leaderboard tr.rank-3")
}
