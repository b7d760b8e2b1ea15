package geo

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// packed 返回地址的规范打包形式：IPv4为4字节，IPv6为16字节
func packed(ip net.IP) []byte {
	if v4 := ip.To4(); v4 != nil {
		return v4
	}
	return ip.To16()
}

// Match 判断address是否落在block（CIDR）内。
// 地址族不一致直接返回false；地址或block无法解析返回error。
func Match(address, block string) (bool, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return false, fmt.Errorf("invalid address %q", address)
	}

	base, lenStr, ok := strings.Cut(block, "/")
	if !ok {
		return false, fmt.Errorf("invalid block %q", block)
	}
	blockIP := net.ParseIP(base)
	if blockIP == nil {
		return false, fmt.Errorf("invalid block address %q", base)
	}
	blockLen, err := strconv.Atoi(lenStr)
	if err != nil {
		return false, fmt.Errorf("invalid prefix length %q", lenStr)
	}

	a := packed(ip)
	b := packed(blockIP)

	// 地址族不同，直接不匹配
	if len(a) != len(b) {
		return false, nil
	}
	if blockLen < 0 || blockLen > len(b)*8 {
		return false, fmt.Errorf("prefix length %d out of range for %q", blockLen, block)
	}

	exactBytes := blockLen / 8
	for i := 0; i < exactBytes; i++ {
		if a[i] != b[i] {
			return false, nil
		}
	}

	tailBits := blockLen % 8
	if tailBits > 0 {
		mask := byte(0xFF ^ (0xFF >> uint(tailBits)))
		if a[exactBytes]&mask != b[exactBytes]&mask {
			return false, nil
		}
	}

	return true, nil
}

// 不可能是公网来源的网段，解析转发链时跳过
var privateBlocks = []string{
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"fc00::/7",
	"fe80::/10",
	"::1/128",
}

// IsPrivate 判断地址是否属于内网/保留网段，无法解析的地址按非内网处理
func IsPrivate(address string) bool {
	for _, block := range privateBlocks {
		ok, err := Match(address, block)
		if err != nil {
			return false
		}
		if ok {
			return true
		}
	}
	return false
}

// ClientAddress 从X-Forwarded-For链里取出真实的调用方地址：
// 取第一个非内网地址，整条链都是内网时退回RemoteAddr。
func ClientAddress(forwardedFor, remoteAddr string) string {
	for _, part := range strings.Split(forwardedFor, ",") {
		addr := strings.TrimSpace(part)
		if addr == "" {
			continue
		}
		if !IsPrivate(addr) {
			return addr
		}
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
