package redeem

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"oroweb/internal/consts"
	"oroweb/internal/identity"
	"oroweb/internal/model"
	"oroweb/pkg/logger"
	"oroweb/pkg/mcdapi"
)

// 兑换编排：REGISTER_DEVICE（仅匿名设备）→ EXCHANGE → ISSUE_CODE，
// 严格串行，第一个失败就终止，后续阶段不再发起。
// 上游接口不保证幂等，所以任何阶段都不做重试。

// Caller 出站调用能力，由pkg/mcdapi实现
type Caller interface {
	PostJSON(ctx context.Context, url string, body interface{}, cookies map[string]string) ([]byte, error)
}

// Endpoints 一组上游接口地址。发码接口按是否会员分两个URL。
type Endpoints struct {
	Register     string
	Exchange     string
	Issue        string
	IssueLoyalty string
}

type Orchestrator struct {
	api Caller
	eps Endpoints
}

func NewOrchestrator(api Caller, eps Endpoints) *Orchestrator {
	return &Orchestrator{api: api, eps: eps}
}

// Redeem 执行一次完整兑换，成功返回上游下发的一次性兑换码
func (o *Orchestrator) Redeem(ctx context.Context, offer model.Offer, id identity.Identity, big bool) (string, error) {
	if !id.Authenticated {
		if err := o.registerDevice(ctx, id.Dev); err != nil {
			return "", err
		}
	}

	if err := o.exchange(ctx, offer, id); err != nil {
		return "", err
	}

	return o.issue(ctx, offer, id, big)
}

// registerDevice 把合成的设备指纹当作metrics报文上报。
// 成功的唯一判据是原始响应体里出现"OK"。
func (o *Orchestrator) registerDevice(ctx context.Context, dev model.DeviceInfo) error {
	raw, err := o.api.PostJSON(ctx, o.eps.Register, dev, nil)
	if err != nil {
		return &Error{Stage: StageRegister, Kind: KindCommunication, Err: err}
	}
	if !strings.Contains(string(raw), consts.RegisterOKMarker) {
		logger.Warnf("device register failed: %s", truncate(raw, 200))
		return &Error{Stage: StageRegister, Kind: KindRejected, Msg: truncate(raw, 200)}
	}
	return nil
}

func (o *Orchestrator) exchange(ctx context.Context, offer model.Offer, id identity.Identity) error {
	level := consts.UserLevelAnonymous
	if id.Authenticated {
		level = consts.UserLevelAuth
	}
	body := model.ExchangeRequest{
		DeviceId:  id.DeviceId,
		OfferId:   strconv.Itoa(offer.Id),
		UserLevel: level,
	}

	raw, err := o.api.PostJSON(ctx, o.eps.Exchange, body, id.Cookies)
	if err != nil {
		return &Error{Stage: StageExchange, Kind: KindCommunication, Err: err}
	}
	env, err := mcdapi.DecodeEnvelope(raw)
	if err != nil {
		return &Error{Stage: StageExchange, Kind: KindMalformed, Err: err}
	}
	if env.Code != consts.ApiCodeSuccess {
		return &Error{Stage: StageExchange, Kind: KindRejected, Code: env.Code, Msg: env.Msg}
	}
	return nil
}

func (o *Orchestrator) issue(ctx context.Context, offer model.Offer, id identity.Identity, big bool) (string, error) {
	url := o.eps.Issue
	if offer.RequiresAuth {
		url = o.eps.IssueLoyalty
	}
	body := model.IssueRequest{
		DeviceId:  id.DeviceId,
		OfferId:   strconv.Itoa(offer.Id),
		OfferType: offer.Type,
		QrCode:    offer.QRCode(big),
		User:      id.User,
	}

	raw, err := o.api.PostJSON(ctx, url, body, id.Cookies)
	if err != nil {
		return "", &Error{Stage: StageIssue, Kind: KindCommunication, Err: err}
	}
	env, err := mcdapi.DecodeEnvelope(raw)
	if err != nil {
		return "", &Error{Stage: StageIssue, Kind: KindMalformed, Err: err}
	}
	if env.Code != consts.ApiCodeSuccess {
		return "", &Error{Stage: StageIssue, Kind: KindRejected, Code: env.Code, Msg: env.Msg}
	}

	var res mcdapi.IssueResponse
	if err := unmarshalResponse(env, &res); err != nil || res.UniqueCode == "" {
		if err == nil {
			err = errors.New("response.uniqueCode missing")
		}
		return "", &Error{Stage: StageIssue, Kind: KindMalformed, Err: err}
	}
	return res.UniqueCode, nil
}

func unmarshalResponse(env *mcdapi.Envelope, v interface{}) error {
	if len(env.Response) == 0 {
		return errors.New("envelope has no response")
	}
	return env.DecodeResponse(v)
}

func truncate(raw []byte, n int) string {
	s := string(raw)
	if len(s) > n {
		return s[:n]
	}
	return s
}
