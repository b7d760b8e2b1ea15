package consts

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	// 入站请求头
	HeaderAcceptLanguage = "Accept-Language"
	HeaderEdgeCountry    = "CF-IPCountry"
	HeaderForwardedFor   = "X-Forwarded-For"

	DateLayout = "2006-01-02"
	TimeLayout = "2006-01-02 15:04:05"
)

// 上游移动端相关的固定值，来自安卓客户端抓包
const (
	UserAgentMobile = "okhttp/3.9.0"

	AppId    = "3976"
	MccSpain = "214"

	SDKVersion = "6.1.10"
	AppVersion = "6.5.1"

	// 设备注册接口成功时响应体里会出现的标记
	RegisterOKMarker = "OK"

	// 标准响应envelope的成功码
	ApiCodeSuccess = 100
	ApiMsgOK       = "OK"
)

const (
	CountrySpain = "ES"

	UserLevelAnonymous = 0
	UserLevelAuth      = 1
)

// SpainLocales 只在西班牙境内使用的语言标签（小写比较）
var SpainLocales = []string{"es-es", "ca", "ca-es", "gl", "gl-es", "eu", "eu-es"}

// 面向用户的提示文案（页面语言为西班牙语）
const (
	MsgRegionDenied  = "Estos códigos son únicamente válidos para McDonalds España."
	MsgOfferNotFound = "Oferta no encontrada"
)
