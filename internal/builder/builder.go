// builder.go - Turns request bags into HAR entries.
// A bag with Network.requestWillBeSent becomes an HTTP entry; a bag with only
// Network.webSocket* events becomes a WebSocket entry; anything else carries
// nothing worth reporting and is dropped.
package builder

import (
	"time"

	"github.com/bhecquet/seleniumRobot-sub007/internal/aggregate"
	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
	"github.com/bhecquet/seleniumRobot-sub007/internal/redaction"
	"github.com/bhecquet/seleniumRobot-sub007/internal/timeline"
)

const (
	// HTTPVersionUnknown is reported for requests: CDP has no request-line version.
	HTTPVersionUnknown = "HTTP N/A"
	// MaskedContent replaces response bodies, which are never captured.
	MaskedContent = "_masked_"
	// UnknownMimeType is used when no response was received.
	UnknownMimeType = "x-unknown"
	// NoResponseText is the status text of a synthesized response.
	NoResponseText = "No response received"
	// DefaultWebSocketURL is used when Network.webSocketCreated was not logged.
	DefaultWebSocketURL = "wss://not.found"
)

// Route is the builder a bag is sent to.
type Route int

const (
	RouteDrop Route = iota
	RouteHTTP
	RouteWebSocket
)

func (r Route) String() string {
	switch r {
	case RouteHTTP:
		return "http"
	case RouteWebSocket:
		return "websocket"
	default:
		return "drop"
	}
}

// RouteFor picks the builder for a bag.
func RouteFor(bag *aggregate.Bag) Route {
	switch {
	case bag.HasRequest():
		return RouteHTTP
	case bag.HasWebSocket():
		return RouteWebSocket
	default:
		return RouteDrop
	}
}

// Builder builds entries against one page index. It shares the index's
// "used" marks, so it is bound to a single synthesis run.
type Builder struct {
	index  *timeline.Index
	policy *redaction.Policy
	loc    *time.Location
}

// New returns a Builder. A nil policy means redaction.DefaultPolicy(); a nil
// location means time.Local.
func New(index *timeline.Index, policy *redaction.Policy, loc *time.Location) *Builder {
	if index == nil {
		index = timeline.NewIndex(nil)
	}
	if policy == nil {
		policy = redaction.DefaultPolicy()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Builder{index: index, policy: policy, loc: loc}
}

// Build routes the bag and builds its entry. For RouteDrop the entry is the
// zero value and err is nil.
func (b *Builder) Build(bag *aggregate.Bag) (har.Entry, Route, error) {
	route := RouteFor(bag)
	switch route {
	case RouteHTTP:
		e, err := b.HTTPEntry(bag)
		return e, route, err
	case RouteWebSocket:
		e, err := b.WebSocketEntry(bag)
		return e, route, err
	default:
		return har.Entry{}, route, nil
	}
}

func (b *Builder) startedDateTime(epochMs int64) string {
	return har.FormatDateTime(time.UnixMilli(epochMs), b.loc)
}

func emptyCookies() []har.Cookie {
	return make([]har.Cookie, 0)
}
