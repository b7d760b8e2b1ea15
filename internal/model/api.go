package model

// 上游接口的请求报文。字段类型照抄客户端的原始格式：
// offerId是字符串，offerType是裸数字。

type ExchangeRequest struct {
	DeviceId  string `json:"deviceId"`
	OfferId   string `json:"offerId"`
	UserLevel int    `json:"userLevel"`
}

type IssueRequest struct {
	DeviceId  string `json:"deviceId"`
	OfferId   string `json:"offerId"`
	OfferType int    `json:"offerType"`
	QrCode    string `json:"qrCode"`
	// 会员身份的邮箱，匿名兑换时为空串
	User string `json:"user"`
}
