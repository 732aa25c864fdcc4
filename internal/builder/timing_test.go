package builder

import (
	"encoding/json"
	"testing"

	"github.com/bhecquet/seleniumRobot-sub007/internal/cdp"
	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
)

func measuredTiming() cdp.ResourceTiming {
	return cdp.ResourceTiming{
		RequestTime:         f64(10),
		ProxyStart:          f64(-1),
		DNSStart:            f64(1),
		DNSEnd:              f64(3),
		ConnectStart:        f64(3),
		ConnectEnd:          f64(8),
		SSLStart:            f64(5),
		SSLEnd:              f64(8),
		SendStart:           f64(9),
		SendEnd:             f64(10),
		ReceiveHeadersStart: f64(120),
		ReceiveHeadersEnd:   f64(121),
	}
}

func TestTimingsNotApplicablePhases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*cdp.ResourceTiming)
		check  func(har.Timings) bool
	}{
		{"dns", func(rt *cdp.ResourceTiming) { rt.DNSEnd = f64(-1) }, func(h har.Timings) bool { return h.DNS == -1 }},
		{"connect", func(rt *cdp.ResourceTiming) { rt.ConnectEnd = f64(-1) }, func(h har.Timings) bool { return h.Connect == -1 }},
		{"ssl", func(rt *cdp.ResourceTiming) { rt.SSLEnd = f64(-1) }, func(h har.Timings) bool { return h.SSL == -1 }},
		{"all measured", func(*cdp.ResourceTiming) {}, func(h har.Timings) bool {
			return h.DNS == 2 && h.Connect == 5 && h.SSL == 3 &&
				h.Send == 1 && h.Wait == 110 && h.Receive == 379
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := measuredTiming()
			tt.mutate(&rt)
			got := Timings(&rt, 10.5)
			if !tt.check(got) {
				t.Errorf("unexpected timings %+v", got)
			}
		})
	}
}

func TestTimingsBlockedIsMinOfProxyAndSend(t *testing.T) {
	t.Parallel()
	rt := measuredTiming()
	rt.ProxyStart, rt.SendStart = f64(-1), f64(4)
	if got := Timings(&rt, 10.5); got.Blocked != -1 {
		t.Errorf("Blocked = %v, want -1", got.Blocked)
	}
	rt.ProxyStart, rt.SendStart = f64(3), f64(2)
	if got := Timings(&rt, 10.5); got.Blocked != 2 {
		t.Errorf("Blocked = %v, want 2", got.Blocked)
	}
}

func TestTimingsNil(t *testing.T) {
	t.Parallel()
	if got := Timings(nil, 5); got != har.EmptyTimings() {
		t.Errorf("Timings(nil) = %+v, want zero stub", got)
	}
}

func TestTimingsIncompleteObjectIsZeroStub(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		json string
	}{
		// Chrome before 115 sends no receiveHeadersStart.
		{"no receiveHeadersStart", `{"requestTime":91274.5,"proxyStart":-1,"proxyEnd":-1,"dnsStart":-1,"dnsEnd":-1,
			"connectStart":-1,"connectEnd":-1,"sslStart":-1,"sslEnd":-1,"sendStart":4.1,"sendEnd":4.2,"receiveHeadersEnd":12}`},
		{"empty object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rt cdp.ResourceTiming
			if err := json.Unmarshal([]byte(tt.json), &rt); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if rt.Complete() {
				t.Fatal("Complete() = true for an incomplete object")
			}
			if got := Timings(&rt, 91276); got != har.EmptyTimings() {
				t.Errorf("Timings = %+v, want zero stub", got)
			}
		})
	}
}

func TestDurationMsTruncates(t *testing.T) {
	t.Parallel()
	if got := durationMs(1, 1.0009765625); got != 0 {
		t.Errorf("durationMs = %d, want 0", got)
	}
	if got := durationMs(2, 4.5); got != 2500 {
		t.Errorf("durationMs = %d, want 2500", got)
	}
}
