package model

// DeviceInfo 一台"刚装好app"的安卓设备指纹，字段名与客户端上报报文一致
type DeviceInfo struct {
	SDKVersion      string `json:"SDKVersion"`
	AppVersion      string `json:"appVersion"`
	DateTime        string `json:"dateTime"`
	Device          string `json:"device"`
	Id              string `json:"id"`
	InstallReferrer string `json:"installReferrer"`
	IsFirstRun      string `json:"isFirstRun"`
	Language        string `json:"language"`
	Mcc             string `json:"mcc"`
	Mnc             string `json:"mnc"`
	Model           string `json:"model"`
	NotificationId  string `json:"notificationId"`
	PixelHeight     int    `json:"pixelHeight"`
	PixelWidth      int    `json:"pixelWidth"`
	RunningSecs     int    `json:"runningSecs"`
	Status          string `json:"status"`
	Udid            string `json:"udid"`
	UserDoc         string `json:"userDoc"`
	UserIdGA        string `json:"userIdGA"`
	Version         string `json:"version"`
}

// AuthIdentity 账号池里的一个会员身份，注册工具产出，这里只读
type AuthIdentity struct {
	Email   string            `json:"email"`
	Dev     DeviceInfo        `json:"dev"`
	Cookies map[string]string `json:"cookies"`
}
