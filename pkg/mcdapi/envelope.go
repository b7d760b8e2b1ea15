package mcdapi

import (
	"fmt"

	gojson "github.com/goccy/go-json"
)

// Envelope 上游所有JSON接口的统一外壳。业务数据在response里，
// code==100表示成功，其余code配合msg描述失败原因。
type Envelope struct {
	Code     int               `json:"code"`
	Msg      string            `json:"msg"`
	Response gojson.RawMessage `json:"response"`
}

// DecodeResponse 解析envelope的response部分
func (e *Envelope) DecodeResponse(v interface{}) error {
	return gojson.Unmarshal(e.Response, v)
}

// DecodeEnvelope 解析envelope，解析不了视为畸形响应
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := gojson.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

// IssueResponse 发码接口的response部分
type IssueResponse struct {
	UniqueCode string `json:"uniqueCode"`
}
