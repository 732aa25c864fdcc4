// timing.go - HAR phase timings from a CDP ResourceTiming.
package builder

import (
	"math"

	"github.com/bhecquet/seleniumRobot-sub007/internal/cdp"
	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
)

// notApplicable is the CDP and HAR marker for a phase that did not happen.
const notApplicable = -1

// phase returns end-start, or -1 when CDP reported the end as -1.
func phase(start, end float64) float64 {
	if end == notApplicable {
		return notApplicable
	}
	return end - start
}

// Timings converts t into HAR timings. loadEnd is the monotonic timestamp,
// in seconds, at which the body finished loading. A missing or incomplete
// timing object yields the all-zero stub.
func Timings(t *cdp.ResourceTiming, loadEnd float64) har.Timings {
	if !t.Complete() {
		return har.EmptyTimings()
	}
	return har.Timings{
		Blocked: math.Min(*t.ProxyStart, *t.SendStart),
		DNS:     phase(*t.DNSStart, *t.DNSEnd),
		Connect: phase(*t.ConnectStart, *t.ConnectEnd),
		SSL:     phase(*t.SSLStart, *t.SSLEnd),
		Send:    *t.SendEnd - *t.SendStart,
		Wait:    *t.ReceiveHeadersStart - *t.SendEnd,
		Receive: (loadEnd-*t.RequestTime)*1000 - *t.ReceiveHeadersEnd,
	}
}

// durationMs is the elapsed time between two monotonic timestamps in
// seconds, truncated to whole milliseconds.
func durationMs(start, end float64) int {
	return int((end - start) * 1000)
}
