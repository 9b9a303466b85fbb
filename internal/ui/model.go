// Package ui implements the terminal leaderboard viewer.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
	"github.com/palemoky/arcade-leaderboard/internal/network/client"
	"github.com/palemoky/arcade-leaderboard/internal/ui/common"
	"github.com/palemoky/arcade-leaderboard/internal/ui/view"
)

const fetchTimeout = 10 * time.Second

// Messages
type (
	refreshMsg   struct{}
	connectedMsg struct{}
	rowsMsg      struct{ Rows []leaderboard.RankedRow }
	errMsg       struct{ Err error }
)

// Model is the bubbletea model for the leaderboard viewer.
// Without a client it renders the built-in list locally; with one it
// fetches rendered rows from the server.
type Model struct {
	renderer *leaderboard.Renderer
	entries  []leaderboard.ScoreEntry

	client    *client.Client
	connected bool

	table   *view.Table
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	loading bool
	err     error
	width   int
}

func newModel(title string) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		table:   view.NewTable(title),
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: s,
	}
}

// NewLocalModel creates a model that renders entries in-process.
func NewLocalModel(renderer *leaderboard.Renderer, entries []leaderboard.ScoreEntry, title string) *Model {
	m := newModel(title)
	m.renderer = renderer
	m.entries = entries
	return m
}

// NewOnlineModel creates a model that fetches rows from serverURL.
func NewOnlineModel(serverURL, title string) *Model {
	m := newModel(title)
	m.client = client.NewClient(serverURL)
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return refreshMsg{} },
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.client != nil {
				_ = m.client.Close()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m.refresh()
		}
		return m, nil

	case refreshMsg:
		return m.refresh()

	case connectedMsg:
		m.connected = true
		return m, m.fetchRows()

	case rowsMsg:
		m.loading = false
		m.err = nil
		m.table.SetRows(msg.Rows)
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.Err
		if m.client != nil {
			// 下次刷新时重新连接
			_ = m.client.Close()
			m.connected = false
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// refresh 重新渲染：本地直接写入表格，在线模式向服务器请求
func (m *Model) refresh() (tea.Model, tea.Cmd) {
	if m.client == nil {
		m.err = m.renderer.Render(context.Background(), m.entries, m.table)
		return m, nil
	}

	if m.loading {
		return m, nil
	}
	m.loading = true
	if !m.connected {
		return m, m.connectToServer()
	}
	return m, m.fetchRows()
}

func (m *Model) connectToServer() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		if err := c.Connect(ctx); err != nil {
			return errMsg{Err: err}
		}
		return connectedMsg{}
	}
}

func (m *Model) fetchRows() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		rows, err := c.FetchRows(ctx)
		if err != nil {
			return errMsg{Err: err}
		}
		return rowsMsg{Rows: rows}
	}
}

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.table.View(m.width))
	sb.WriteString("\n")

	if m.loading {
		sb.WriteString(m.spinner.View() + " 正在加载排行榜...\n")
	}
	if m.err != nil {
		sb.WriteString(common.ErrorStyle.Render("错误: "+m.err.Error()) + "\n")
	}
	sb.WriteString(common.PromptStyle.Render(m.help.View(m.keys)))

	return common.DocStyle.Render(sb.String())
}
