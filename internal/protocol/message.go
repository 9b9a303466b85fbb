// Package protocol defines the websocket messages exchanged between the
// leaderboard server and its terminal viewer.
package protocol

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
)

// MessageType 消息类型
type MessageType string

const (
	MsgRender MessageType = "render" // 客户端请求渲染结果
	MsgRows   MessageType = "rows"   // 服务端返回排行行
	MsgError  MessageType = "error"
)

// ErrUnknownType 未知消息类型
var ErrUnknownType = errors.New("unknown message type")

// Message 消息
type Message struct {
	Type  MessageType
	Rows  []leaderboard.RankedRow
	Error string
}

// NewRenderRequest 渲染请求
func NewRenderRequest() *Message {
	return &Message{Type: MsgRender}
}

// NewRows 渲染结果
func NewRows(rows []leaderboard.RankedRow) *Message {
	return &Message{Type: MsgRows, Rows: rows}
}

// NewError 错误消息
func NewError(msg string) *Message {
	return &Message{Type: MsgError, Error: msg}
}

// Encode 将消息编码为 Protobuf 字节（google.protobuf.Struct）
func Encode(m *Message) ([]byte, error) {
	fields := map[string]any{
		"type": string(m.Type),
	}
	if m.Error != "" {
		fields["error"] = m.Error
	}
	if m.Type == MsgRows {
		rows := make([]any, 0, len(m.Rows))
		for _, r := range m.Rows {
			rows = append(rows, rowToMap(r))
		}
		fields["rows"] = rows
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build struct: %w", err)
	}
	return proto.Marshal(s)
}

// Decode 从 Protobuf 字节解码消息
func Decode(data []byte) (*Message, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	fields := s.GetFields()
	m := &Message{
		Type:  MessageType(fields["type"].GetStringValue()),
		Error: fields["error"].GetStringValue(),
	}

	switch m.Type {
	case MsgRender, MsgError:
	case MsgRows:
		values := fields["rows"].GetListValue().GetValues()
		m.Rows = make([]leaderboard.RankedRow, 0, len(values))
		for _, v := range values {
			m.Rows = append(m.Rows, rowFromStruct(v.GetStructValue()))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
	return m, nil
}

func rowToMap(r leaderboard.RankedRow) map[string]any {
	return map[string]any{
		"rank":        r.Rank,
		"suffix":      r.Suffix,
		"highlight":   int(r.Highlight),
		"score":       r.Score,
		"name":        r.Name,
		"entry_name":  r.Entry.Name,
		"entry_score": r.Entry.Score,
	}
}

func rowFromStruct(s *structpb.Struct) leaderboard.RankedRow {
	f := s.GetFields()
	return leaderboard.RankedRow{
		Entry: leaderboard.ScoreEntry{
			Name:  f["entry_name"].GetStringValue(),
			Score: int(f["entry_score"].GetNumberValue()),
		},
		Rank:      int(f["rank"].GetNumberValue()),
		Suffix:    f["suffix"].GetStringValue(),
		Highlight: leaderboard.Highlight(f["highlight"].GetNumberValue()),
		Score:     f["score"].GetStringValue(),
		Name:      f["name"].GetStringValue(),
	}
}
