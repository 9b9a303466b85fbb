// Package page provides the HTML leaderboard page and its table-body surface.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"io"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/palemoky/arcade-leaderboard/internal/apperrors"
	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
)

// DefaultSelector 排行榜行容器
const DefaultSelector = ".leaderboard tbody"

//go:embed assets
var assets embed.FS

// Stylesheet 返回内置样式表
func Stylesheet() []byte {
	data, _ := assets.ReadFile("assets/style.css")
	return data
}

// Document HTML 页面
type Document struct {
	root *html.Node
}

// Parse 解析 HTML 页面
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// Default 解析内置页面，每次返回新的文档树
func Default() (*Document, error) {
	f, err := assets.Open("assets/index.html")
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// find 返回第一个匹配 selector 的节点
func (d *Document) find(selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidSelector, err)
	}
	n := sel.MatchFirst(d.root)
	if n == nil {
		return nil, apperrors.ErrTargetNotFound
	}
	return n, nil
}

// Locate 实现 leaderboard.Locator
func (d *Document) Locate(selector string) (leaderboard.Surface, error) {
	n, err := d.find(selector)
	if err != nil {
		return nil, err
	}
	return &TableBody{node: n}, nil
}

// SetText 替换匹配节点的全部内容为纯文本
func (d *Document) SetText(selector, text string) error {
	n, err := d.find(selector)
	if err != nil {
		return err
	}
	removeChildren(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return nil
}

// WriteTo 输出 HTML
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return 0, fmt.Errorf("render html: %w", err)
	}
	return buf.WriteTo(w)
}

// Bytes 返回渲染后的 HTML
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}
