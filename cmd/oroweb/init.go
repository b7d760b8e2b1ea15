package main

import (
	"oroweb/conf"
	"oroweb/internal/catalog"
	"oroweb/internal/geo"
	"oroweb/internal/handler/offer"
	"oroweb/internal/identity"
	"oroweb/internal/redeem"
	"oroweb/internal/router"
	"oroweb/pkg/geoip"
	"oroweb/pkg/mcdapi"
)

// InitRouter 组装依赖。返回的cleanup在shutdown时释放IP库句柄。
func InitRouter(cfg *conf.Config) (*router.ApiRouter, func(), error) {
	geoDB, err := geoip.Open(&cfg.Region)
	if err != nil {
		return nil, nil, err
	}

	client, err := mcdapi.NewClient(&cfg.Upstream)
	if err != nil {
		geoDB.Close()
		return nil, nil, err
	}

	cat := catalog.New(&cfg.Catalog)
	resolver := geo.NewResolver(geoDB)
	selector := identity.NewSelector(cat, identity.NewRand())
	orch := redeem.NewOrchestrator(client, redeem.Endpoints{
		Register:     cfg.Upstream.RegisterURL,
		Exchange:     cfg.Upstream.ExchangeURL,
		Issue:        cfg.Upstream.IssueURL,
		IssueLoyalty: cfg.Upstream.IssueLoyaltyURL,
	})

	oh := offer.NewHandler(resolver, cat, selector, orch, cfg.Group)

	return router.NewApiRouter(oh), geoDB.Close, nil
}
