package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"oroweb/internal/model"
)

type stubGetter struct {
	reply string
	err   error
}

func (s *stubGetter) GetJSON(ctx context.Context, url string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.reply), nil
}

const loyaltyReply = `{
	"code": 100,
	"msg": "OK",
	"response": {
		"offers": [
			{
				"id": 42,
				"type": 1,
				"level": 1,
				"name": " Big Mac ",
				"qrCode": "123456789012",
				"bigQrCode": "123456789013",
				"checkoutCode": "9001",
				"bigCheckoutCode": "9002",
				"price": "4.50",
				"imageDetail": "https://example.org/bigmac.png",
				"dateFrom": "01/08/2026",
				"dateTo": "31/08/2026"
			},
			{
				"id": 43,
				"type": 7,
				"level": 0,
				"name": "Oferta prueba",
				"qrCode": "555566667777",
				"checkoutCode": "9003",
				"price": "1.00",
				"imageDetail": "https://example.org/test.png",
				"dateFrom": "01/08/2026",
				"dateTo": "31/08/2026"
			}
		]
	}
}`

func TestLoyaltyOffers(t *testing.T) {
	f := NewFetcher(&stubGetter{reply: loyaltyReply})

	offers, err := f.LoyaltyOffers(context.Background(), "https://upstream/offers")
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 2 {
		t.Fatalf("offers = %d, want 2", len(offers))
	}

	o := offers[0]
	if o.Name != "Big Mac" {
		t.Errorf("Name = %q, want trimmed", o.Name)
	}
	if o.Code != "123456789012" || o.BigCode != "123456789013" {
		t.Errorf("codes = %q/%q", o.Code, o.BigCode)
	}
	if o.Price != 4.5 {
		t.Errorf("Price = %v", o.Price)
	}
	if o.DateFrom.Month() != time.August || o.DateFrom.Day() != 1 {
		t.Errorf("DateFrom = %v", o.DateFrom)
	}

	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	if !o.InWindow(now) {
		t.Error("offer should be in window")
	}
	if o.InWindow(now.AddDate(0, 2, 0)) {
		t.Error("offer should be out of window")
	}
}

func TestCalendarOffers(t *testing.T) {
	reply := `{
		"code": 100,
		"msg": "OK",
		"response": {
			"offersPromotion": [
				{"offer": {"id": 50, "type": 1, "level": 0, "name": "McFlurry",
					"qrCode": "111122223333", "checkoutCode": "9004", "price": "2.00",
					"imageDetail": "https://example.org/mcflurry.png",
					"dateFrom": "15/08/2026", "dateTo": "15/08/2026"}}
			]
		}
	}`
	f := NewFetcher(&stubGetter{reply: reply})

	offers, err := f.CalendarOffers(context.Background(), "https://upstream/calendar")
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 1 || offers[0].Name != "McFlurry" {
		t.Errorf("offers = %+v", offers)
	}
}

func TestFetchApiError(t *testing.T) {
	reply := `{"code": 801, "msg": "KO (message was: Daily offer not found)"}`
	f := NewFetcher(&stubGetter{reply: reply})

	_, err := f.CalendarOffers(context.Background(), "https://upstream/calendar")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsDailyOfferNotFound(err) {
		t.Errorf("expected daily-offer-not-found, got %v", err)
	}

	var apiErr *ApiError
	if !errors.As(err, &apiErr) || apiErr.Code != 801 {
		t.Errorf("unexpected error %v", err)
	}
}

func TestFetchTransportError(t *testing.T) {
	f := NewFetcher(&stubGetter{err: errors.New("dial tcp: refused")})
	if _, err := f.LoyaltyOffers(context.Background(), "https://upstream/offers"); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildCatalog(t *testing.T) {
	offers := []Offer{
		{Id: 42, Type: 1, Level: 1, Name: "Big Mac", Code: "123456789012", BigCode: "123456789013", Image: "img"},
		{Id: 43, Type: 7, Level: 0, Name: "Menú prueba", Code: "555566667777"},
		{Id: 44, Type: 1, Level: 0, Name: "McFlurry", Code: "111122223333"},
	}
	previous := map[string]model.Offer{
		"123456789012": {AuthKeys: []string{"oldkey"}},
	}

	catalog := BuildCatalog(offers, previous)

	if _, ok := catalog["555566667777"]; ok {
		t.Error("prueba offers must be skipped")
	}

	bigmac := catalog["123456789012"]
	if !bigmac.RequiresAuth {
		t.Error("type 1 level 1 must require auth")
	}
	if len(bigmac.AuthKeys) != 2 || bigmac.AuthKeys[0] != "oldkey" {
		t.Errorf("AuthKeys = %v, want old key kept plus a fresh one", bigmac.AuthKeys)
	}
	if len(bigmac.AuthKeys[1]) != 16 {
		t.Errorf("fresh key = %q, want 16 hex chars", bigmac.AuthKeys[1])
	}

	mcflurry := catalog["111122223333"]
	if mcflurry.RequiresAuth {
		t.Error("type 1 level 0 must not require auth")
	}
}
