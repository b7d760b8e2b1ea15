package redeem

import "fmt"

// Stage 兑换流程的阶段
type Stage string

const (
	StageRegister Stage = "register"
	StageExchange Stage = "exchange"
	StageIssue    Stage = "issue"
)

// FailureKind 失败的类别。上游完全没有应答（网络/超时）和
// 有应答但拒绝、有应答但解析不了是三种不同的失败。
type FailureKind int

const (
	// 上游返回了格式正确的拒绝
	KindRejected FailureKind = iota
	// 传输层失败，没有任何应答
	KindCommunication
	// 有应答但无法解析或缺字段
	KindMalformed
)

// Error 兑换失败。任何阶段失败都终止整个兑换，不重试。
type Error struct {
	Stage Stage
	Kind  FailureKind
	// 上游envelope里的code和msg，仅KindRejected时有意义
	Code int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindCommunication:
		return fmt.Sprintf("%s: communication failure: %v", e.Stage, e.Err)
	case KindMalformed:
		return fmt.Sprintf("%s: malformed response: %v", e.Stage, e.Err)
	default:
		return fmt.Sprintf("%s: rejected (code: %d, message: %s)", e.Stage, e.Code, e.Msg)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}
