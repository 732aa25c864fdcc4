// bag.go - Per-requestId collection of correlated network events.
package aggregate

import "github.com/bhecquet/seleniumRobot-sub007/internal/cdp"

// Direction tells sent frames from received ones.
type Direction string

const (
	Send    Direction = "send"
	Receive Direction = "receive"
)

// Frame is one WebSocket frame event in arrival order.
type Frame struct {
	Direction Direction
	Event     cdp.WebSocketFrame
}

// Bag holds every event seen for one requestId. Each single-valued field
// keeps the last event of its kind; Frames keeps all frames in arrival order.
type Bag struct {
	RequestID string

	RequestWillBeSent          *cdp.RequestWillBeSent
	RequestWillBeSentExtraInfo *cdp.RequestWillBeSentExtraInfo
	ResponseReceived           *cdp.ResponseReceived
	ResponseReceivedExtraInfo  *cdp.ResponseReceivedExtraInfo
	LoadingFinished            *cdp.LoadingFinished
	LoadingFailed              *cdp.LoadingFailed

	WebSocketCreated                   *cdp.WebSocketCreated
	WebSocketWillSendHandshakeRequest  *cdp.WebSocketWillSendHandshakeRequest
	WebSocketHandshakeResponseReceived *cdp.WebSocketHandshakeResponseReceived
	WebSocketClosed                    *cdp.WebSocketClosed
	Frames                             []Frame
}

// put stores the payload under its kind.
func (b *Bag) put(p cdp.Payload) {
	switch ev := p.(type) {
	case *cdp.RequestWillBeSent:
		b.RequestWillBeSent = ev
	case *cdp.RequestWillBeSentExtraInfo:
		b.RequestWillBeSentExtraInfo = ev
	case *cdp.ResponseReceived:
		b.ResponseReceived = ev
	case *cdp.ResponseReceivedExtraInfo:
		b.ResponseReceivedExtraInfo = ev
	case *cdp.LoadingFinished:
		b.LoadingFinished = ev
	case *cdp.LoadingFailed:
		b.LoadingFailed = ev
	case *cdp.WebSocketCreated:
		b.WebSocketCreated = ev
	case *cdp.WebSocketWillSendHandshakeRequest:
		b.WebSocketWillSendHandshakeRequest = ev
	case *cdp.WebSocketHandshakeResponseReceived:
		b.WebSocketHandshakeResponseReceived = ev
	case *cdp.WebSocketClosed:
		b.WebSocketClosed = ev
	case *cdp.WebSocketFrameSent:
		b.Frames = append(b.Frames, Frame{Direction: Send, Event: ev.WebSocketFrame})
	case *cdp.WebSocketFrameReceived:
		b.Frames = append(b.Frames, Frame{Direction: Receive, Event: ev.WebSocketFrame})
	}
}

// HasRequest reports whether the bag can be built as an HTTP entry.
func (b *Bag) HasRequest() bool {
	return b.RequestWillBeSent != nil
}

// HasWebSocket reports whether any Network.webSocket* event was seen.
func (b *Bag) HasWebSocket() bool {
	return b.WebSocketCreated != nil ||
		b.WebSocketWillSendHandshakeRequest != nil ||
		b.WebSocketHandshakeResponseReceived != nil ||
		b.WebSocketClosed != nil ||
		len(b.Frames) > 0
}
