package identity

import (
	"fmt"
	"time"

	"oroweb/internal/consts"
	"oroweb/internal/model"
)

// 随机设备指纹。取值范围都来自真实客户端的上报样本。

var manufacturers = []string{
	"Samsung",
	"Apple",
	"Huawei",
	"Nokia",
	"Sony",
	"LG",
	"HTC",
	"Motorola",
	"Acer",
	"bq",
	"BIRD",
	"BlackBerry",
	"Dell",
	"Coolpad",
	"Google",
	"Honor",
	"Kyocera",
	"Karbonn",
}

var resolutions = [][2]int{
	{1280, 720},
	{1920, 1080},
	{800, 480},
	{854, 480},
	{960, 540},
	{1024, 600},
	{1280, 800},
	{2560, 1440},
}

var apiVersions = []string{
	"5.0 (21)",
	"5.0.1 (21)",
	"5.0.2 (21)",
	"5.1 (22)",
	"5.1.1 (22)",
	"6.0 (23)",
	"6.0.1 (23)",
	"7.0 (24)",
	"7.1 (25)",
	"7.1.1 (25)",
	"7.1.2 (25)",
	"8.0 (26)",
	"8.1 (27)",
}

const hexDigits = "0123456789abcdef"

// randomModel 生成型号串：1~2个大写字母加一个数字，如"S7"、"XZ3"
func randomModel(rnd Rand) string {
	model := string(rune('A' + rnd.Intn(26)))
	if rnd.Intn(6) <= 1 {
		model += string(rune('A' + rnd.Intn(26)))
	}
	return fmt.Sprintf("%s%d", model, 1+rnd.Intn(9))
}

// randomUdid 8字节随机数的hex表示
func randomUdid(rnd Rand) string {
	b := make([]byte, 16)
	for i := range b {
		b[i] = hexDigits[rnd.Intn(16)]
	}
	return string(b)
}

// RandomDeviceInfo 合成一台全新"首跑"设备
func RandomDeviceInfo(rnd Rand) model.DeviceInfo {
	resolution := resolutions[rnd.Intn(len(resolutions))]

	return model.DeviceInfo{
		SDKVersion:      consts.SDKVersion,
		AppVersion:      consts.AppVersion,
		DateTime:        time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		Device:          manufacturers[rnd.Intn(len(manufacturers))],
		Id:              consts.AppId,
		InstallReferrer: "",
		IsFirstRun:      "1",
		Language:        consts.CountrySpain,
		Mcc:             consts.MccSpain,
		Mnc:             fmt.Sprintf("0%d", 1+rnd.Intn(9)),
		Model:           randomModel(rnd),
		NotificationId:  "",
		PixelHeight:     resolution[0],
		PixelWidth:      resolution[1],
		RunningSecs:     0,
		Status:          "start",
		Udid:            randomUdid(rnd),
		UserDoc:         "",
		UserIdGA:        "",
		Version:         apiVersions[rnd.Intn(len(apiVersions))],
	}
}
