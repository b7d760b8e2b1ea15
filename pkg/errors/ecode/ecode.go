package ecode

// 错误码注册表。0表示成功，1xxxx为通用错误，2xxxx为兑换业务错误。
const (
	Success = 0

	InternalErr    = 10001
	ValidateErr    = 10002
	NotFoundErr    = 10003
	RequireAuthErr = 10004

	// 地区校验不通过
	RegionDeniedErr = 20001
	// 目录里没有该优惠
	OfferNotFoundErr = 20002
	// authKey不在该优惠的授权集合里
	AuthKeyRejectedErr = 20003
	// 账号池为空或不可读
	NoIdentityErr = 20004
	// 设备注册失败
	RegistrationErr = 20005
	// 兑换接口拒绝
	ExchangeErr = 20006
	// 发码接口拒绝
	IssuanceErr = 20007
	// 上游无任何应答（网络/超时）
	CommunicationErr = 20008
	// 有应答但无法解析，或缺少预期字段
	MalformedResponseErr = 20009
)
