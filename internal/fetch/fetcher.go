package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"oroweb/internal/consts"
	"oroweb/internal/model"
	"oroweb/pkg/mcdapi"
	"oroweb/utils"
)

// 从上游拉取当前在线的优惠，生成web端使用的目录文档。
// 上游有两个来源：常规loyalty列表和日历优惠，后者经常返回
// "Daily offer not found"，这是正常情况不算失败。

// Getter 上游的读取能力
type Getter interface {
	GetJSON(ctx context.Context, url string) ([]byte, error)
}

// ApiError 上游envelope里的业务错误
type ApiError struct {
	Code int
	Msg  string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("API replied with an error (code: %d, message: %s)", e.Code, e.Msg)
}

// ErrDailyOfferNotFound 日历接口没有当日优惠时的应答
const msgDailyOfferNotFound = "KO (message was: Daily offer not found)"

// IsDailyOfferNotFound 判断是否是"当日无优惠"这种可容忍的失败
func IsDailyOfferNotFound(err error) bool {
	e, ok := err.(*ApiError)
	return ok && e.Msg == msgDailyOfferNotFound
}

// Offer 上游返回的一条优惠（已把大份量变体并进来）
type Offer struct {
	Id           int
	Type         int
	Level        int
	Name         string
	Code         string
	BigCode      string
	CheckoutCode string
	Price        float64
	Image        string
	DateFrom     time.Time
	DateTo       time.Time
}

// InWindow 优惠在now这一天是否有效
func (o *Offer) InWindow(now time.Time) bool {
	day := now.Truncate(24 * time.Hour)
	return !o.DateFrom.After(day) && !o.DateTo.Before(day)
}

type rawOffer struct {
	Id              int    `json:"id"`
	Type            int    `json:"type"`
	Level           int    `json:"level"`
	Name            string `json:"name"`
	QrCode          string `json:"qrCode"`
	BigQrCode       string `json:"bigQrCode"`
	CheckoutCode    string `json:"checkoutCode"`
	BigCheckoutCode string `json:"bigCheckoutCode"`
	// 上游把价格放在字符串里
	Price       string `json:"price"`
	ImageDetail string `json:"imageDetail"`
	DateFrom    string `json:"dateFrom"`
	DateTo      string `json:"dateTo"`
}

// 上游的日期格式是dd/mm/yyyy
const upstreamDateLayout = "02/01/2006"

type Fetcher struct {
	api Getter
}

func NewFetcher(api Getter) *Fetcher {
	return &Fetcher{api: api}
}

// LoyaltyOffers 拉取常规优惠列表
func (f *Fetcher) LoyaltyOffers(ctx context.Context, url string) ([]Offer, error) {
	var res struct {
		Offers []rawOffer `json:"offers"`
	}
	if err := f.fetch(ctx, url, &res); err != nil {
		return nil, err
	}
	return convertOffers(res.Offers)
}

// CalendarOffers 拉取日历优惠
func (f *Fetcher) CalendarOffers(ctx context.Context, url string) ([]Offer, error) {
	var res struct {
		OffersPromotion []struct {
			Offer rawOffer `json:"offer"`
		} `json:"offersPromotion"`
	}
	if err := f.fetch(ctx, url, &res); err != nil {
		return nil, err
	}
	raws := make([]rawOffer, 0, len(res.OffersPromotion))
	for _, p := range res.OffersPromotion {
		raws = append(raws, p.Offer)
	}
	return convertOffers(raws)
}

func (f *Fetcher) fetch(ctx context.Context, url string, out interface{}) error {
	raw, err := f.api.GetJSON(ctx, url)
	if err != nil {
		return fmt.Errorf("cannot fetch from endpoint: %w", err)
	}
	env, err := mcdapi.DecodeEnvelope(raw)
	if err != nil {
		return err
	}
	if env.Code != consts.ApiCodeSuccess || env.Msg != consts.ApiMsgOK {
		return &ApiError{Code: env.Code, Msg: env.Msg}
	}
	if err := env.DecodeResponse(out); err != nil {
		return fmt.Errorf("non-standard response: %w", err)
	}
	return nil
}

func convertOffers(raws []rawOffer) ([]Offer, error) {
	offers := make([]Offer, 0, len(raws))
	for _, r := range raws {
		from, err := time.Parse(upstreamDateLayout, r.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("offer %q: bad dateFrom %q", r.Name, r.DateFrom)
		}
		to, err := time.Parse(upstreamDateLayout, r.DateTo)
		if err != nil {
			return nil, fmt.Errorf("offer %q: bad dateTo %q", r.Name, r.DateTo)
		}
		offers = append(offers, Offer{
			Id:           r.Id,
			Type:         r.Type,
			Level:        r.Level,
			Name:         strings.TrimSpace(r.Name),
			Code:         r.QrCode,
			BigCode:      r.BigQrCode,
			CheckoutCode: r.CheckoutCode,
			Price:        cast.ToFloat64(r.Price),
			Image:        r.ImageDetail,
			DateFrom:     from,
			DateTo:       to,
		})
	}
	return offers, nil
}

// BuildCatalog 把拉到的优惠转成web端目录。
// 内部测试用的"prueba"优惠不对外发布。会员等级1/2的type 1优惠
// 需要账号池身份兑换。previous里已有的authKey继续有效，每次
// 刷新再追加一个新key。
func BuildCatalog(offers []Offer, previous map[string]model.Offer) map[string]model.Offer {
	catalog := make(map[string]model.Offer, len(offers))
	for _, o := range offers {
		if strings.Contains(strings.ToLower(o.Name), "prueba") {
			continue
		}

		authKeys := []string{}
		if prev, ok := previous[o.Code]; ok {
			authKeys = append(authKeys, prev.AuthKeys...)
		}
		authKeys = append(authKeys, utils.TokenHex(8))

		catalog[o.Code] = model.Offer{
			Id:           o.Id,
			Type:         o.Type,
			Name:         o.Name,
			Image:        o.Image,
			Code:         o.Code,
			BigCode:      o.BigCode,
			AuthKeys:     authKeys,
			RequiresAuth: o.Type == 1 && (o.Level == 1 || o.Level == 2),
		}
	}
	return catalog
}
