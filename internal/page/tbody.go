package page

import (
	"context"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
)

// TableBody 页面中的 <tbody> 输出面
type TableBody struct {
	node *html.Node
}

// Clear 移除所有已有行（包括页面自带的占位行）
func (t *TableBody) Clear(context.Context) error {
	removeChildren(t.node)
	return nil
}

// AppendRow 追加一行 <tr>
func (t *TableBody) AppendRow(_ context.Context, row leaderboard.RankedRow) error {
	tr := element(atom.Tr, row.Highlight.String())
	tr.AppendChild(cell("rank", row.Ordinal()))
	tr.AppendChild(cell("points", row.Score))
	tr.AppendChild(cell("name", row.Name))
	t.node.AppendChild(tr)
	return nil
}

// Len 当前行数
func (t *TableBody) Len() int {
	n := 0
	for c := t.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Tr {
			n++
		}
	}
	return n
}

func cell(class, text string) *html.Node {
	td := element(atom.Td, class)
	td.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return td
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}
