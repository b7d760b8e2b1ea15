package geo

import (
	"oroweb/internal/consts"
	"oroweb/internal/model"
	"oroweb/pkg/logger"
	"oroweb/utils"
)

// Locator IP到国家码的查询能力。查不到时返回空串而不是error，
// error只用于地址本身不合法或底层库故障。
type Locator interface {
	CountryCode(address string) (string, error)
}

// Resolver 地区判定。三个信号按固定顺序求值，命中即短路：
//  1. Accept-Language里出现只在西班牙境内使用的语言
//  2. 边缘网络（Cloudflare）标注的国家码为ES。该头只有部署在
//     Cloudflare后面才可信，这里按部署前提直接采信，不再校验来源
//  3. 调用方IP落库查询为ES。查库开销最大，放最后
type Resolver struct {
	locator Locator
	allowed []string
}

func NewResolver(locator Locator) *Resolver {
	return &Resolver{
		locator: locator,
		allowed: consts.SpainLocales,
	}
}

func (r *Resolver) Resolve(info model.RequestInfo) model.RegionDecision {
	d := model.RegionDecision{}

	// 信号1：浏览器语言
	d.Evaluated = append(d.Evaluated, model.SignalLanguage)
	for _, tag := range ParseLanguageHeader(info.AcceptLanguage) {
		if utils.ContainsStr(r.allowed, tag) {
			d.Allowed = true
			d.Matched = model.SignalLanguage
			return d
		}
	}

	// 信号2：边缘网络国家码
	d.Evaluated = append(d.Evaluated, model.SignalEdgeCountry)
	if info.EdgeCountry == consts.CountrySpain {
		d.Allowed = true
		d.Matched = model.SignalEdgeCountry
		return d
	}

	// 信号3：IP落库
	d.Evaluated = append(d.Evaluated, model.SignalGeoIP)
	addr := ClientAddress(info.ForwardedFor, info.RemoteAddr)
	cc, err := r.locator.CountryCode(addr)
	if err != nil {
		logger.Warnf("geoip lookup %s: %v", addr, err)
	}
	if cc == consts.CountrySpain {
		d.Allowed = true
		d.Matched = model.SignalGeoIP
		return d
	}

	d.Reason = consts.MsgRegionDenied
	return d
}
