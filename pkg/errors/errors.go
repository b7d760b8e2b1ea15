package errors

import (
	"fmt"

	"oroweb/pkg/errors/ecode"
)

// 带错误码的error，handler层统一用DecodeErr还原成响应

type withCode struct {
	code  int
	msg   string
	cause error
}

func (e *withCode) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *withCode) Unwrap() error {
	return e.cause
}

// WithCode 创建一个带错误码的error
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{
		code: code,
		msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap 包装已有error并附加错误码和说明
func Wrap(err error, code int, msg string) error {
	if err == nil {
		return nil
	}
	return &withCode{
		code:  code,
		msg:   msg,
		cause: err,
	}
}

// Code 取出错误码，普通error一律按InternalErr处理
func Code(err error) int {
	if err == nil {
		return ecode.Success
	}
	if e, ok := err.(*withCode); ok {
		return e.code
	}
	return ecode.InternalErr
}

// DecodeErr 解析error，返回错误码和对外的提示信息
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, "OK"
	}
	if e, ok := err.(*withCode); ok {
		return e.code, e.msg
	}
	return ecode.InternalErr, err.Error()
}
