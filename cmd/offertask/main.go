package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	gojson "github.com/goccy/go-json"

	"oroweb/conf"
	"oroweb/internal/fetch"
	"oroweb/internal/model"
	"oroweb/pkg/logger"
	"oroweb/pkg/mcdapi"
)

// 目录刷新任务：拉取上游当前在线的优惠，重建web端的目录文档。
// 由cron驱动，web服务检测到文件变化后自动重载。

func main() {
	cfgPath := flag.String("config", "config.yaml", "YAML configuration")
	flag.Parse()

	if err := conf.LoadConfig(*cfgPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(&conf.AppConfig.Log)
	defer logger.Sync()

	if err := run(&conf.AppConfig); err != nil {
		logger.Fatalf("offer task failed: %v", err)
	}
}

func run(cfg *conf.Config) error {
	client, err := mcdapi.NewClient(&cfg.Upstream)
	if err != nil {
		return err
	}
	fetcher := fetch.NewFetcher(client)
	ctx := context.Background()

	offers, err := fetcher.LoyaltyOffers(ctx, cfg.Upstream.LoyaltyOffersURL)
	if err != nil {
		return err
	}

	loc := time.UTC
	if cfg.Fetch.Timezone != "" {
		if l, err := time.LoadLocation(cfg.Fetch.Timezone); err == nil {
			loc = l
		} else {
			logger.Warnf("unknown timezone %q, using UTC", cfg.Fetch.Timezone)
		}
	}
	now := time.Now().In(loc)

	calendar, err := fetcher.CalendarOffers(ctx, cfg.Upstream.CalendarOffersURL)
	switch {
	case err == nil:
		for _, o := range calendar {
			if o.InWindow(now) {
				offers = append(offers, o)
			}
		}
	case fetch.IsDailyOfferNotFound(err):
		// 当天没有日历优惠，正常情况
	default:
		return err
	}

	// 同一个兑换码只保留第一次出现的那条
	seen := make(map[string]bool, len(offers))
	unique := offers[:0]
	for _, o := range offers {
		if seen[o.Code] {
			continue
		}
		seen[o.Code] = true
		unique = append(unique, o)
	}
	offers = unique

	if len(offers) < cfg.Fetch.MinOfferCount {
		// 上游很可能处于维护窗口，保留旧目录
		logger.Warnf("only %d offers fetched (min %d), keeping previous catalog",
			len(offers), cfg.Fetch.MinOfferCount)
		return nil
	}

	previous := readPrevious(cfg.Catalog.OffersFile)
	catalog := fetch.BuildCatalog(offers, previous)

	if err := writeCatalog(cfg.Catalog.OffersFile, catalog); err != nil {
		return err
	}
	logger.Infof("offer catalog updated, %d offers", len(catalog))
	return nil
}

func readPrevious(path string) map[string]model.Offer {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	previous := make(map[string]model.Offer)
	if err := gojson.Unmarshal(data, &previous); err != nil {
		logger.Warnf("previous catalog unreadable, starting fresh: %v", err)
		return nil
	}
	return previous
}

// writeCatalog 先写临时文件再rename，web端不会读到半截文档
func writeCatalog(path string, catalog map[string]model.Offer) error {
	data, err := gojson.Marshal(catalog)
	if err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(path), ".codes.json.tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
