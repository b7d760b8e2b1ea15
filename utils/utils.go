package utils

import (
	"crypto/rand"
	"encoding/hex"
)

func ContainsStr(slice []string, item string) bool {
	for _, e := range slice {
		if e == item {
			return true
		}
	}
	return false
}

// TokenHex 生成n个随机字节的hex字符串，用于authKey
func TokenHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
