package redeem

import (
	"context"
	"errors"
	"testing"

	"oroweb/internal/identity"
	"oroweb/internal/model"
)

var testEndpoints = Endpoints{
	Register:     "https://upstream/register",
	Exchange:     "https://upstream/exchange",
	Issue:        "https://upstream/issue",
	IssueLoyalty: "https://upstream/issue-loyalty",
}

type call struct {
	url     string
	body    interface{}
	cookies map[string]string
}

// fakeCaller 按URL返回预置的响应，并记录调用序列
type fakeCaller struct {
	replies map[string]string
	errs    map[string]error
	calls   []call
}

func (f *fakeCaller) PostJSON(ctx context.Context, url string, body interface{}, cookies map[string]string) ([]byte, error) {
	f.calls = append(f.calls, call{url: url, body: body, cookies: cookies})
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return []byte(f.replies[url]), nil
}

func anonIdentity() identity.Identity {
	return identity.Identity{
		DeviceId: "ffeeddccbbaa0011",
		Dev:      model.DeviceInfo{Udid: "ffeeddccbbaa0011", IsFirstRun: "1"},
	}
}

func authIdentity() identity.Identity {
	return identity.Identity{
		User:          "user@example.org",
		DeviceId:      "00112233aabbccdd",
		Cookies:       map[string]string{"PHPSESSID": "abc"},
		Authenticated: true,
	}
}

func testOffer() model.Offer {
	return model.Offer{Id: 42, Type: 1, Code: "123456789012", BigCode: "123456789013"}
}

func stageErr(t *testing.T, err error) *Error {
	t.Helper()
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *redeem.Error, got %T: %v", err, err)
	}
	return e
}

func TestRedeemRegistrationFailureStopsFlow(t *testing.T) {
	api := &fakeCaller{replies: map[string]string{
		testEndpoints.Register: `{"status":"KO"}`,
	}}
	o := NewOrchestrator(api, testEndpoints)

	_, err := o.Redeem(context.Background(), testOffer(), anonIdentity(), false)
	e := stageErr(t, err)
	if e.Stage != StageRegister || e.Kind != KindRejected {
		t.Errorf("got stage=%s kind=%d", e.Stage, e.Kind)
	}
	// 注册失败后不允许再碰兑换接口
	if len(api.calls) != 1 {
		t.Errorf("calls = %d, want 1", len(api.calls))
	}
}

func TestRedeemAnonymousHappyPath(t *testing.T) {
	api := &fakeCaller{replies: map[string]string{
		testEndpoints.Register: `Inserted: OK`,
		testEndpoints.Exchange: `{"code":100,"msg":"OK"}`,
		testEndpoints.Issue:    `{"code":100,"msg":"OK","response":{"uniqueCode":"123456789012"}}`,
	}}
	o := NewOrchestrator(api, testEndpoints)

	code, err := o.Redeem(context.Background(), testOffer(), anonIdentity(), false)
	if err != nil {
		t.Fatal(err)
	}
	if code != "123456789012" {
		t.Errorf("code = %q", code)
	}

	if len(api.calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(api.calls))
	}
	if api.calls[0].url != testEndpoints.Register ||
		api.calls[1].url != testEndpoints.Exchange ||
		api.calls[2].url != testEndpoints.Issue {
		t.Errorf("unexpected call order: %+v", api.calls)
	}

	// 匿名兑换的userLevel必须是0，deviceId全程一致
	ex := api.calls[1].body.(model.ExchangeRequest)
	if ex.UserLevel != 0 || ex.DeviceId != "ffeeddccbbaa0011" || ex.OfferId != "42" {
		t.Errorf("exchange body = %+v", ex)
	}
	is := api.calls[2].body.(model.IssueRequest)
	if is.DeviceId != "ffeeddccbbaa0011" || is.User != "" || is.QrCode != "123456789012" {
		t.Errorf("issue body = %+v", is)
	}
	// offerId是字符串而offerType保持数字，与客户端报文一致
	if is.OfferId != "42" || is.OfferType != 1 {
		t.Errorf("offer fields = id %q type %v", is.OfferId, is.OfferType)
	}
}

func TestRedeemAuthenticatedSkipsRegistration(t *testing.T) {
	offer := testOffer()
	offer.RequiresAuth = true

	api := &fakeCaller{replies: map[string]string{
		testEndpoints.Exchange:     `{"code":100,"msg":"OK"}`,
		testEndpoints.IssueLoyalty: `{"code":100,"msg":"OK","response":{"uniqueCode":"999988887777"}}`,
	}}
	o := NewOrchestrator(api, testEndpoints)

	code, err := o.Redeem(context.Background(), offer, authIdentity(), false)
	if err != nil {
		t.Fatal(err)
	}
	if code != "999988887777" {
		t.Errorf("code = %q", code)
	}

	if len(api.calls) != 2 {
		t.Fatalf("calls = %d, want 2 (no registration)", len(api.calls))
	}
	if api.calls[0].url != testEndpoints.Exchange {
		t.Errorf("first call = %s", api.calls[0].url)
	}
	// 会员兑换走loyalty地址，带上会话cookie，userLevel为1
	if api.calls[1].url != testEndpoints.IssueLoyalty {
		t.Errorf("issue url = %s, want loyalty variant", api.calls[1].url)
	}
	if api.calls[1].cookies["PHPSESSID"] != "abc" {
		t.Error("session cookies not forwarded")
	}
	ex := api.calls[0].body.(model.ExchangeRequest)
	if ex.UserLevel != 1 {
		t.Errorf("UserLevel = %d, want 1", ex.UserLevel)
	}
	is := api.calls[1].body.(model.IssueRequest)
	if is.User != "user@example.org" {
		t.Errorf("User = %q", is.User)
	}
}

func TestRedeemExchangeRejected(t *testing.T) {
	offer := testOffer()
	offer.RequiresAuth = true

	api := &fakeCaller{replies: map[string]string{
		testEndpoints.Exchange: `{"code":801,"msg":"Offer already redeemed"}`,
	}}
	o := NewOrchestrator(api, testEndpoints)

	_, err := o.Redeem(context.Background(), offer, authIdentity(), false)
	e := stageErr(t, err)
	if e.Stage != StageExchange || e.Kind != KindRejected {
		t.Errorf("got stage=%s kind=%d", e.Stage, e.Kind)
	}
	if e.Code != 801 || e.Msg != "Offer already redeemed" {
		t.Errorf("server detail not carried: %+v", e)
	}
	if len(api.calls) != 1 {
		t.Errorf("calls = %d, want 1 (issue never attempted)", len(api.calls))
	}
}

func TestRedeemCommunicationFailure(t *testing.T) {
	offer := testOffer()
	offer.RequiresAuth = true

	api := &fakeCaller{errs: map[string]error{
		testEndpoints.Exchange: errors.New("dial tcp: i/o timeout"),
	}}
	o := NewOrchestrator(api, testEndpoints)

	_, err := o.Redeem(context.Background(), offer, authIdentity(), false)
	e := stageErr(t, err)
	if e.Kind != KindCommunication {
		t.Errorf("kind = %d, want KindCommunication", e.Kind)
	}
}

func TestRedeemMalformedResponses(t *testing.T) {
	offer := testOffer()
	offer.RequiresAuth = true

	cases := map[string]string{
		"not json":           `<html>502 Bad Gateway</html>`,
		"missing uniqueCode": `{"code":100,"msg":"OK","response":{}}`,
		"no response":        `{"code":100,"msg":"OK"}`,
	}
	for name, issueReply := range cases {
		api := &fakeCaller{replies: map[string]string{
			testEndpoints.Exchange:     `{"code":100,"msg":"OK"}`,
			testEndpoints.IssueLoyalty: issueReply,
		}}
		o := NewOrchestrator(api, testEndpoints)

		_, err := o.Redeem(context.Background(), offer, authIdentity(), false)
		e := stageErr(t, err)
		if e.Stage != StageIssue || e.Kind != KindMalformed {
			t.Errorf("%s: got stage=%s kind=%d", name, e.Stage, e.Kind)
		}
	}
}

func TestRedeemBigCodeSelection(t *testing.T) {
	offer := testOffer()
	offer.RequiresAuth = true

	newAPI := func() *fakeCaller {
		return &fakeCaller{replies: map[string]string{
			testEndpoints.Exchange:     `{"code":100,"msg":"OK"}`,
			testEndpoints.IssueLoyalty: `{"code":100,"msg":"OK","response":{"uniqueCode":"111122223333"}}`,
		}}
	}

	// 请求大份量且有大码
	api := newAPI()
	o := NewOrchestrator(api, testEndpoints)
	if _, err := o.Redeem(context.Background(), offer, authIdentity(), true); err != nil {
		t.Fatal(err)
	}
	if got := api.calls[1].body.(model.IssueRequest).QrCode; got != "123456789013" {
		t.Errorf("QrCode = %q, want big code", got)
	}

	// 请求大份量但没有大码：回落到标准码
	offer.BigCode = ""
	api = newAPI()
	o = NewOrchestrator(api, testEndpoints)
	if _, err := o.Redeem(context.Background(), offer, authIdentity(), true); err != nil {
		t.Fatal(err)
	}
	if got := api.calls[1].body.(model.IssueRequest).QrCode; got != "123456789012" {
		t.Errorf("QrCode = %q, want standard code fallback", got)
	}
}
