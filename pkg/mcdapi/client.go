package mcdapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	gojson "github.com/goccy/go-json"
	"golang.org/x/crypto/pkcs12"
	"golang.org/x/net/proxy"

	"oroweb/conf"
	"oroweb/internal/consts"
)

// 上游移动端后台的HTTP客户端：客户端证书 + 固定UA + 可选SOCKS5代理。
// 上游不看HTTP状态码，所有语义都在JSON envelope里，所以这里只负责
// 把报文发出去、把原始响应体拿回来，不做状态码判断。

type Client struct {
	http      *http.Client
	userAgent string
}

func NewClient(cfg *conf.UpstreamConfig) (*Client, error) {
	tlsCfg := &tls.Config{}
	if cfg.CertFile != "" {
		cert, err := loadP12(cfg.CertFile, cfg.CertPassword)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	tr := &http.Transport{TLSClientConfig: tlsCfg}
	if cfg.Proxy != "" {
		if err := setupProxy(tr, cfg.Proxy); err != nil {
			return nil, err
		}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = consts.UserAgentMobile
	}

	return &Client{
		http: &http.Client{
			Transport: tr,
			Timeout:   cfg.Timeout,
		},
		userAgent: ua,
	}, nil
}

// loadP12 解开P12证书并转成tls.Certificate
func loadP12(path, password string) (tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, err
	}
	blocks, err := pkcs12.ToPEM(data, password)
	if err != nil {
		return tls.Certificate{}, err
	}
	var pemData []byte
	for _, b := range blocks {
		pemData = append(pemData, pem.EncodeToMemory(b)...)
	}
	return tls.X509KeyPair(pemData, pemData)
}

func setupProxy(tr *http.Transport, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}
	switch u.Scheme {
	case "socks5":
		var auth *proxy.Auth
		if u.User != nil {
			password, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: password}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return fmt.Errorf("socks5 dialer: %w", err)
		}
		cd, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("socks5 dialer has no context support")
		}
		tr.DialContext = cd.DialContext
	case "http", "https":
		tr.Proxy = http.ProxyURL(u)
	default:
		return fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	return nil
}

// PostJSON 发送JSON报文，返回原始响应体。cookies按一对一个头的方式附加。
func (c *Client) PostJSON(ctx context.Context, rawURL string, body interface{}, cookies map[string]string) ([]byte, error) {
	payload, err := gojson.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	return c.do(req)
}

// GetJSON 发送GET请求，返回原始响应体
func (c *Client) GetJSON(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
