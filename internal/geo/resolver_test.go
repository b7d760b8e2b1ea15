package geo

import (
	"testing"

	"oroweb/internal/consts"
	"oroweb/internal/model"
)

// 可计数的Locator桩，用来断言短路行为
type stubLocator struct {
	country string
	err     error
	calls   int
}

func (s *stubLocator) CountryCode(address string) (string, error) {
	s.calls++
	return s.country, s.err
}

func TestResolveLanguageSignal(t *testing.T) {
	loc := &stubLocator{}
	r := NewResolver(loc)

	d := r.Resolve(model.RequestInfo{
		AcceptLanguage: "es-ES;q=0.9,en;q=0.8",
		RemoteAddr:     "203.0.113.7:443",
	})
	if !d.Allowed {
		t.Fatal("expected allow via language signal")
	}
	if d.Matched != model.SignalLanguage {
		t.Errorf("Matched = %s, want language", d.Matched)
	}
	if loc.calls != 0 {
		t.Errorf("geoip consulted %d times, want 0", loc.calls)
	}
}

func TestResolveEdgeCountryShortCircuit(t *testing.T) {
	loc := &stubLocator{country: "US"}
	r := NewResolver(loc)

	d := r.Resolve(model.RequestInfo{
		AcceptLanguage: "en-US,en;q=0.9",
		EdgeCountry:    "ES",
		RemoteAddr:     "203.0.113.7:443",
	})
	if !d.Allowed {
		t.Fatal("expected allow via edge-country signal")
	}
	if d.Matched != model.SignalEdgeCountry {
		t.Errorf("Matched = %s, want edge-country", d.Matched)
	}
	// 前两个信号有一个命中时不允许触发查库
	if loc.calls != 0 {
		t.Errorf("geoip consulted %d times, want 0", loc.calls)
	}
	if len(d.Evaluated) != 2 {
		t.Errorf("Evaluated = %v, want 2 signals", d.Evaluated)
	}
}

func TestResolveGeoIPFallback(t *testing.T) {
	loc := &stubLocator{country: "ES"}
	r := NewResolver(loc)

	d := r.Resolve(model.RequestInfo{
		AcceptLanguage: "en",
		EdgeCountry:    "FR",
		ForwardedFor:   "203.0.113.7",
		RemoteAddr:     "10.0.0.1:443",
	})
	if !d.Allowed {
		t.Fatal("expected allow via geoip signal")
	}
	if d.Matched != model.SignalGeoIP {
		t.Errorf("Matched = %s, want geoip", d.Matched)
	}
	if loc.calls != 1 {
		t.Errorf("geoip consulted %d times, want 1", loc.calls)
	}
}

func TestResolveAllSignalsFail(t *testing.T) {
	loc := &stubLocator{country: "DE"}
	r := NewResolver(loc)

	d := r.Resolve(model.RequestInfo{
		AcceptLanguage: "de-DE,de;q=0.9",
		EdgeCountry:    "DE",
		ForwardedFor:   "203.0.113.7",
		RemoteAddr:     "203.0.113.7:443",
	})
	if d.Allowed {
		t.Fatal("expected deny")
	}
	if d.Reason != consts.MsgRegionDenied {
		t.Errorf("Reason = %q, want the Spain-only message", d.Reason)
	}
	if len(d.Evaluated) != 3 {
		t.Errorf("Evaluated = %v, want all 3 signals", d.Evaluated)
	}
}
