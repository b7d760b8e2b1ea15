package model

// Offer 目录里的一条优惠，按兑换码为key加载，加载后只读
type Offer struct {
	Id   int    `json:"id"`
	Type int    `json:"type"`
	Name string `json:"name"`
	// 商品图，页面展示用
	Image string `json:"image"`
	// 标准兑换码，同时也是目录key
	Code string `json:"code"`
	// 大份量变体的兑换码，没有则为空
	BigCode string `json:"bigCode,omitempty"`
	// 允许兑换该优惠的authKey集合
	AuthKeys []string `json:"authKeys"`
	// true表示必须用账号池里的会员身份兑换
	RequiresAuth bool `json:"requiresAuth"`
}

// QRCode 选择要下发的兑换码。请求大份量但该优惠没有大码时回落到标准码。
func (o *Offer) QRCode(big bool) string {
	if big && o.BigCode != "" {
		return o.BigCode
	}
	return o.Code
}
