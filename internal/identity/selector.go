package identity

import (
	"math/rand"
	"time"

	"oroweb/internal/model"
	"oroweb/pkg/errors"
	"oroweb/pkg/errors/ecode"
)

// Rand 随机源。注入接口便于单测给定确定序列。
type Rand interface {
	// Intn 返回[0,n)内的均匀随机数
	Intn(n int) int
}

// NewRand 默认随机源
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Pool 账号池的读取能力，由catalog提供
type Pool interface {
	Identities() ([]model.AuthIdentity, error)
}

// Identity 一次兑换使用的身份。要么是账号池里的会员身份，要么是
// 刚合成的匿名设备（后者必须先过设备注册才能发起兑换）。
type Identity struct {
	// 会员邮箱，匿名时为空串
	User     string
	DeviceId string
	Cookies  map[string]string
	Dev      model.DeviceInfo
	// true表示池里的会员身份，false表示新合成的匿名设备
	Authenticated bool
}

type Selector struct {
	pool Pool
	rnd  Rand
}

func NewSelector(pool Pool, rnd Rand) *Selector {
	return &Selector{pool: pool, rnd: rnd}
}

// Select 按优惠要求选择身份。
// 需要会员的优惠：从池里均匀随机取一个（每次请求独立抽取，不做亲和），
// 并刷新设备指纹的时间戳、首跑标记和运行秒数；deviceId沿用池里存的指纹。
// 其余优惠：合成全新匿名设备。
func (s *Selector) Select(offer model.Offer) (Identity, error) {
	if offer.RequiresAuth {
		ids, err := s.pool.Identities()
		if err != nil {
			return Identity{}, errors.Wrap(err, ecode.NoIdentityErr, "no identity available")
		}
		if len(ids) == 0 {
			return Identity{}, errors.WithCode(ecode.NoIdentityErr, "no identity available")
		}

		chosen := ids[s.rnd.Intn(len(ids))]
		dev := chosen.Dev
		dev.DateTime = time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
		dev.IsFirstRun = "0"
		// 模拟一个已经跑了一会儿的app
		dev.RunningSecs = 5 + s.rnd.Intn(96)

		return Identity{
			User:          chosen.Email,
			DeviceId:      dev.Udid,
			Cookies:       chosen.Cookies,
			Dev:           dev,
			Authenticated: true,
		}, nil
	}

	dev := RandomDeviceInfo(s.rnd)
	return Identity{
		DeviceId: dev.Udid,
		Dev:      dev,
	}, nil
}
