package conf

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 配置加载（上游接口、证书、目录文件等）

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// UpstreamConfig 上游（移动端后台）接口配置。
// 所有请求都是JSON over HTTPS，携带客户端证书，可选走SOCKS5代理。
type UpstreamConfig struct {
	RegisterURL     string `yaml:"register-url"`      // 设备注册/metrics上报
	ExchangeURL     string `yaml:"exchange-url"`      // 兑换接口
	IssueURL        string `yaml:"issue-url"`         // 发码接口（匿名）
	IssueLoyaltyURL string `yaml:"issue-loyalty-url"` // 发码接口（会员）

	// 目录刷新任务使用的接口
	LoyaltyOffersURL  string `yaml:"loyalty-offers-url"`
	CalendarOffersURL string `yaml:"calendar-offers-url"`

	UserAgent    string        `yaml:"user-agent"` // 固定的移动端UA
	CertFile     string        `yaml:"cert-file"`  // P12客户端证书
	CertPassword string        `yaml:"cert-password"`
	Proxy        string        `yaml:"proxy"` // 例如 socks5://127.0.0.1:9050
	Timeout      time.Duration `yaml:"timeout"`
}

// CatalogConfig 本地目录文件（只读JSON）
type CatalogConfig struct {
	OffersFile   string `yaml:"offers-file"`
	IdentityFile string `yaml:"identity-file"`
}

// RegionConfig 地区判定使用的IP库，v4/v6分库
type RegionConfig struct {
	IPv4Database string `yaml:"ipv4-database"`
	IPv6Database string `yaml:"ipv6-database"`
}

// FetchConfig 目录刷新任务配置
type FetchConfig struct {
	MinOfferCount int    `yaml:"min-offer-count"` // 少于该数量视为上游异常，不覆盖目录
	Timezone      string `yaml:"timezone"`
}

// GroupConfig 渠道信息，授权失败提示里会展示
type GroupConfig struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Contact string `yaml:"contact"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`
	Templates    string `yaml:"templates"`
	Static       string `yaml:"static"`

	Log      LogConfig      `yaml:"log"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Region   RegionConfig   `yaml:"region"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Group    GroupConfig    `yaml:"group"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	if AppConfig.Upstream.Timeout == 0 {
		// 上游单次调用的固定超时，超时按通信失败处理
		AppConfig.Upstream.Timeout = 10 * time.Second
	}
	return nil
}
