package catalog

import (
	"os"
	"sync"
	"time"

	gojson "github.com/goccy/go-json"

	"oroweb/conf"
	"oroweb/internal/model"
	"oroweb/pkg/logger"
)

// 只读目录：优惠表和账号池，都是刷新任务落盘的JSON文档。
// 进程内按文件修改时间做缓存，文件被刷新任务覆盖后下一次访问自动重载。
// 加载后的数据不再修改，所以并发读之间没有竞争。

type Catalog struct {
	cfg *conf.CatalogConfig

	mu       sync.Mutex
	offers   map[string]model.Offer
	offersAt time.Time
	pool     []model.AuthIdentity
	poolAt   time.Time
}

func New(cfg *conf.CatalogConfig) *Catalog {
	return &Catalog{cfg: cfg}
}

// Offer 按兑换码查一条优惠。目录文件缺失或损坏时按查无处理（与线上
// 行为一致：坏目录表现为"Oferta no encontrada"，不是5xx）。
func (c *Catalog) Offer(key string) (model.Offer, bool) {
	if key == "" {
		return model.Offer{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.reloadOffers(); err != nil {
		logger.Errorf("load offer catalog: %v", err)
		return model.Offer{}, false
	}
	offer, ok := c.offers[key]
	return offer, ok
}

// Identities 返回账号池。读不到文件时返回error，由身份选择器
// 转成"no identity available"。
func (c *Catalog) Identities() ([]model.AuthIdentity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.reloadPool(); err != nil {
		return nil, err
	}
	return c.pool, nil
}

func (c *Catalog) reloadOffers() error {
	st, err := os.Stat(c.cfg.OffersFile)
	if err != nil {
		return err
	}
	if c.offers != nil && st.ModTime().Equal(c.offersAt) {
		return nil
	}

	data, err := os.ReadFile(c.cfg.OffersFile)
	if err != nil {
		return err
	}
	offers := make(map[string]model.Offer)
	if err := gojson.Unmarshal(data, &offers); err != nil {
		return err
	}
	// key就是标准兑换码，回填方便下游使用
	for code, offer := range offers {
		if offer.Code == "" {
			offer.Code = code
			offers[code] = offer
		}
	}

	c.offers = offers
	c.offersAt = st.ModTime()
	logger.Infof("offer catalog loaded, %d offers", len(offers))
	return nil
}

func (c *Catalog) reloadPool() error {
	st, err := os.Stat(c.cfg.IdentityFile)
	if err != nil {
		return err
	}
	if c.pool != nil && st.ModTime().Equal(c.poolAt) {
		return nil
	}

	data, err := os.ReadFile(c.cfg.IdentityFile)
	if err != nil {
		return err
	}
	var pool []model.AuthIdentity
	if err := gojson.Unmarshal(data, &pool); err != nil {
		return err
	}

	c.pool = pool
	c.poolAt = st.ModTime()
	logger.Infof("identity pool loaded, %d identities", len(pool))
	return nil
}
