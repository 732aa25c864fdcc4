// validate.go - Upfront checks that a bag carries what its builder reads.
// Builders never dereference a pointer these functions have not checked.
package builder

import (
	"errors"
	"fmt"

	"github.com/bhecquet/seleniumRobot-sub007/internal/aggregate"
)

var (
	// ErrMissingRequest means the bag has no Network.requestWillBeSent.
	ErrMissingRequest = errors.New("no requestWillBeSent event")
	// ErrNoWebSocketEvents means the bag has no Network.webSocket* event.
	ErrNoWebSocketEvents = errors.New("no webSocket event")
	// ErrMissingField means an event lacks a field its builder needs.
	ErrMissingField = errors.New("missing field")
)

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// ValidateHTTP checks a bag routed to the HTTP builder.
func ValidateHTTP(bag *aggregate.Bag) error {
	rwbs := bag.RequestWillBeSent
	if rwbs == nil {
		return ErrMissingRequest
	}
	switch {
	case rwbs.Request == nil:
		return missing("requestWillBeSent.request")
	case rwbs.Timestamp == nil:
		return missing("requestWillBeSent.timestamp")
	case rwbs.WallTime == nil:
		return missing("requestWillBeSent.wallTime")
	}
	if extra := bag.RequestWillBeSentExtraInfo; extra != nil && extra.Headers == nil {
		return missing("requestWillBeSentExtraInfo.headers")
	}

	rr := bag.ResponseReceived
	if rr == nil {
		return nil
	}
	switch {
	case rr.Response == nil:
		return missing("responseReceived.response")
	case rr.Response.Status == nil:
		return missing("responseReceived.response.status")
	case rr.Timestamp == nil:
		return missing("responseReceived.timestamp")
	}
	if extra := bag.ResponseReceivedExtraInfo; extra != nil && extra.StatusCode == nil {
		return missing("responseReceivedExtraInfo.statusCode")
	}
	return nil
}

// ValidateWebSocket checks a bag routed to the WebSocket builder.
func ValidateWebSocket(bag *aggregate.Bag) error {
	if !bag.HasWebSocket() {
		return ErrNoWebSocketEvents
	}
	if hr := bag.WebSocketHandshakeResponseReceived; hr != nil && hr.Response == nil {
		return missing("webSocketHandshakeResponseReceived.response")
	}
	if hs := bag.WebSocketWillSendHandshakeRequest; hs != nil {
		if hs.WallTime == nil {
			return missing("webSocketWillSendHandshakeRequest.wallTime")
		}
		// The request is only read when no earlier event seeded one.
		if bag.WebSocketCreated == nil && bag.WebSocketHandshakeResponseReceived == nil && hs.Request == nil {
			return missing("webSocketWillSendHandshakeRequest.request")
		}
		if bag.WebSocketClosed != nil {
			if hs.Timestamp == nil {
				return missing("webSocketWillSendHandshakeRequest.timestamp")
			}
			if bag.WebSocketClosed.Timestamp == nil {
				return missing("webSocketClosed.timestamp")
			}
		}
	}
	for i, f := range bag.Frames {
		if f.Event.Timestamp == nil {
			return missing(fmt.Sprintf("frame[%d].timestamp", i))
		}
		if f.Event.Response == nil {
			return missing(fmt.Sprintf("frame[%d].response", i))
		}
	}
	return nil
}
