package apperrors

// 错误码
const (
	CodeTargetNotFound  = 1001
	CodeInvalidSelector = 1002
	CodeSurfaceWrite    = 1003
)

// RenderError 渲染错误（各输出面共享）
type RenderError struct {
	Code    int
	Message string
}

func (e *RenderError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrTargetNotFound  = &RenderError{Code: CodeTargetNotFound, Message: "leaderboard target not found"}
	ErrInvalidSelector = &RenderError{Code: CodeInvalidSelector, Message: "invalid target selector"}
	ErrSurfaceWrite    = &RenderError{Code: CodeSurfaceWrite, Message: "write to leaderboard surface failed"}
)
