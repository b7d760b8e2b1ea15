package model

// RegionSignal 地区判定的单个信号
type RegionSignal string

const (
	SignalLanguage    RegionSignal = "language"
	SignalEdgeCountry RegionSignal = "edge-country"
	SignalGeoIP       RegionSignal = "geoip"
)

// RequestInfo 一次入站请求里与地区判定相关的字段，进入resolver前就固定下来
type RequestInfo struct {
	AcceptLanguage string
	EdgeCountry    string
	ForwardedFor   string
	RemoteAddr     string
}

// RegionDecision 地区判定结果。Evaluated按求值顺序记录，短路后不再追加。
type RegionDecision struct {
	Allowed   bool
	Evaluated []RegionSignal
	// 第一个命中的信号，未命中时为空
	Matched RegionSignal
	// 拒绝原因，放行时为空
	Reason string
}
