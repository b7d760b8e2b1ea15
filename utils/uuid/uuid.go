package uuid

import (
	"strings"

	guuid "github.com/google/uuid"
)

// GenUUID 生成标准v4 uuid
func GenUUID() string {
	return guuid.NewString()
}

// GenUUID16 生成16位短id，用于请求链路追踪
func GenUUID16() string {
	return strings.ReplaceAll(guuid.NewString(), "-", "")[:16]
}
