// events.go - Typed payloads for the Network.* events read from performance logs.
// Field names follow https://chromedevtools.github.io/devtools-protocol/tot/Network/
package cdp

import (
	"encoding/json"
	"strconv"
)

// Payload is implemented by every event payload in this package.
type Payload interface {
	Kind() Kind
	requestID() string
}

// Event is one classified performance-log line.
type Event struct {
	RequestID string
	Webview   string
	Payload   Payload
}

// Kind returns the kind of the wrapped payload.
func (e Event) Kind() Kind {
	if e.Payload == nil {
		return KindUnknown
	}
	return e.Payload.Kind()
}

// RequestRef carries the requestId shared by every network event.
type RequestRef struct {
	RequestID string `json:"requestId"`
}

func (r RequestRef) requestID() string { return r.RequestID }

// ============================================
// Headers
// ============================================

// Headers is a CDP header object. Values are normally strings; numbers and
// booleans are kept in their JSON text form so one odd value does not lose
// the whole event.
type Headers map[string]string

// UnmarshalJSON decodes a header object, tolerating non-string values.
func (h *Headers) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*h = nil
		return nil
	}
	out := make(Headers, len(raw))
	for name, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			out[name] = s
			continue
		}
		if string(value) == "null" {
			out[name] = ""
			continue
		}
		out[name] = string(value)
	}
	*h = out
	return nil
}

// ContentLength returns the Content-Length header as an int, or 0 when the
// header is absent or not numeric.
func (h Headers) ContentLength() int {
	v, ok := h["Content-Length"]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return n
}

// ============================================
// HTTP events
// ============================================

// RequestWillBeSent is Network.requestWillBeSent.
type RequestWillBeSent struct {
	RequestRef
	Timestamp *float64 `json:"timestamp"`
	WallTime  *float64 `json:"wallTime"`
	Type      string   `json:"type,omitempty"`
	Request   *Request `json:"request"`
}

// Request is the request object embedded in Network.requestWillBeSent.
type Request struct {
	Method      string  `json:"method"`
	URL         string  `json:"url"`
	Headers     Headers `json:"headers"`
	HasPostData bool    `json:"hasPostData,omitempty"`
}

// RequestWillBeSentExtraInfo is Network.requestWillBeSentExtraInfo. Its
// headers are the ones actually put on the wire (cookies included).
type RequestWillBeSentExtraInfo struct {
	RequestRef
	Headers Headers `json:"headers"`
}

// ResponseReceived is Network.responseReceived.
type ResponseReceived struct {
	RequestRef
	Timestamp *float64  `json:"timestamp"`
	Type      string    `json:"type,omitempty"`
	Response  *Response `json:"response"`
}

// Response is the response object embedded in Network.responseReceived.
type Response struct {
	URL               string          `json:"url"`
	Status            *int            `json:"status"`
	StatusText        string          `json:"statusText"`
	Protocol          string          `json:"protocol"`
	Headers           Headers         `json:"headers"`
	MimeType          string          `json:"mimeType"`
	EncodedDataLength float64         `json:"encodedDataLength"`
	FromDiskCache     bool            `json:"fromDiskCache,omitempty"`
	RemoteIPAddress   string          `json:"remoteIPAddress,omitempty"`
	Timing            *ResourceTiming `json:"timing"`
}

// ResourceTiming is the CDP timing object. requestTime is in seconds on the
// monotonic clock, every other field is milliseconds relative to it. An
// *End field of -1 means the phase did not happen. Fields that HAR timings
// are computed from are pointers: older browsers omit receiveHeadersStart.
type ResourceTiming struct {
	RequestTime         *float64 `json:"requestTime"`
	ProxyStart          *float64 `json:"proxyStart"`
	ProxyEnd            float64  `json:"proxyEnd"`
	DNSStart            *float64 `json:"dnsStart"`
	DNSEnd              *float64 `json:"dnsEnd"`
	ConnectStart        *float64 `json:"connectStart"`
	ConnectEnd          *float64 `json:"connectEnd"`
	SSLStart            *float64 `json:"sslStart"`
	SSLEnd              *float64 `json:"sslEnd"`
	SendStart           *float64 `json:"sendStart"`
	SendEnd             *float64 `json:"sendEnd"`
	ReceiveHeadersStart *float64 `json:"receiveHeadersStart"`
	ReceiveHeadersEnd   *float64 `json:"receiveHeadersEnd"`
}

// Complete reports whether every field HAR timings are computed from was sent.
func (t *ResourceTiming) Complete() bool {
	if t == nil {
		return false
	}
	for _, v := range []*float64{
		t.RequestTime, t.ProxyStart,
		t.DNSStart, t.DNSEnd,
		t.ConnectStart, t.ConnectEnd,
		t.SSLStart, t.SSLEnd,
		t.SendStart, t.SendEnd,
		t.ReceiveHeadersStart, t.ReceiveHeadersEnd,
	} {
		if v == nil {
			return false
		}
	}
	return true
}

// ResponseReceivedExtraInfo is Network.responseReceivedExtraInfo. Its
// statusCode is authoritative when a response is replayed from disk cache.
type ResponseReceivedExtraInfo struct {
	RequestRef
	StatusCode  *int    `json:"statusCode"`
	Headers     Headers `json:"headers"`
	HeadersText string  `json:"headersText,omitempty"`
}

// LoadingFinished is Network.loadingFinished.
type LoadingFinished struct {
	RequestRef
	Timestamp         *float64 `json:"timestamp"`
	EncodedDataLength float64  `json:"encodedDataLength"`
}

// LoadingFailed is Network.loadingFailed.
type LoadingFailed struct {
	RequestRef
	Timestamp *float64 `json:"timestamp"`
	ErrorText string   `json:"errorText"`
	Canceled  bool     `json:"canceled,omitempty"`
	Type      string   `json:"type,omitempty"`
}

// ============================================
// WebSocket events
// ============================================

// WebSocketCreated is Network.webSocketCreated.
type WebSocketCreated struct {
	RequestRef
	URL string `json:"url"`
}

// WebSocketWillSendHandshakeRequest is Network.webSocketWillSendHandshakeRequest.
type WebSocketWillSendHandshakeRequest struct {
	RequestRef
	Timestamp *float64          `json:"timestamp"`
	WallTime  *float64          `json:"wallTime"`
	Request   *WebSocketRequest `json:"request"`
}

// WebSocketRequest is the handshake request object.
type WebSocketRequest struct {
	Headers Headers `json:"headers"`
}

// WebSocketHandshakeResponseReceived is Network.webSocketHandshakeResponseReceived.
type WebSocketHandshakeResponseReceived struct {
	RequestRef
	Timestamp *float64           `json:"timestamp"`
	Response  *WebSocketResponse `json:"response"`
}

// WebSocketResponse is the handshake response object. It also echoes the
// request headers as sent.
type WebSocketResponse struct {
	Status             int     `json:"status"`
	StatusText         string  `json:"statusText"`
	Headers            Headers `json:"headers"`
	HeadersText        string  `json:"headersText,omitempty"`
	RequestHeaders     Headers `json:"requestHeaders,omitempty"`
	RequestHeadersText string  `json:"requestHeadersText,omitempty"`
}

// WebSocketFrame is the shared shape of sent and received frame events.
type WebSocketFrame struct {
	RequestRef
	Timestamp *float64              `json:"timestamp"`
	Response  *WebSocketFrameDetail `json:"response"`
}

// WebSocketFrameDetail is the frame object. CDP names it "response" for
// both directions.
type WebSocketFrameDetail struct {
	Opcode      int    `json:"opcode"`
	Mask        bool   `json:"mask"`
	PayloadData string `json:"payloadData"`
}

// WebSocketFrameSent is Network.webSocketFrameSent.
type WebSocketFrameSent struct {
	WebSocketFrame
}

// WebSocketFrameReceived is Network.webSocketFrameReceived.
type WebSocketFrameReceived struct {
	WebSocketFrame
}

// WebSocketClosed is Network.webSocketClosed.
type WebSocketClosed struct {
	RequestRef
	Timestamp *float64 `json:"timestamp"`
}

func (RequestWillBeSent) Kind() Kind                  { return KindRequestWillBeSent }
func (RequestWillBeSentExtraInfo) Kind() Kind         { return KindRequestWillBeSentExtraInfo }
func (ResponseReceived) Kind() Kind                   { return KindResponseReceived }
func (ResponseReceivedExtraInfo) Kind() Kind          { return KindResponseReceivedExtraInfo }
func (LoadingFinished) Kind() Kind                    { return KindLoadingFinished }
func (LoadingFailed) Kind() Kind                      { return KindLoadingFailed }
func (WebSocketCreated) Kind() Kind                   { return KindWebSocketCreated }
func (WebSocketWillSendHandshakeRequest) Kind() Kind  { return KindWebSocketWillSendHandshakeRequest }
func (WebSocketHandshakeResponseReceived) Kind() Kind { return KindWebSocketHandshakeResponseReceived }
func (WebSocketFrameSent) Kind() Kind                 { return KindWebSocketFrameSent }
func (WebSocketFrameReceived) Kind() Kind             { return KindWebSocketFrameReceived }
func (WebSocketClosed) Kind() Kind                    { return KindWebSocketClosed }

// newPayload returns an empty payload to decode params into.
func newPayload(k Kind) Payload {
	switch k {
	case KindRequestWillBeSent:
		return &RequestWillBeSent{}
	case KindRequestWillBeSentExtraInfo:
		return &RequestWillBeSentExtraInfo{}
	case KindResponseReceived:
		return &ResponseReceived{}
	case KindResponseReceivedExtraInfo:
		return &ResponseReceivedExtraInfo{}
	case KindLoadingFinished:
		return &LoadingFinished{}
	case KindLoadingFailed:
		return &LoadingFailed{}
	case KindWebSocketCreated:
		return &WebSocketCreated{}
	case KindWebSocketWillSendHandshakeRequest:
		return &WebSocketWillSendHandshakeRequest{}
	case KindWebSocketHandshakeResponseReceived:
		return &WebSocketHandshakeResponseReceived{}
	case KindWebSocketFrameSent:
		return &WebSocketFrameSent{}
	case KindWebSocketFrameReceived:
		return &WebSocketFrameReceived{}
	case KindWebSocketClosed:
		return &WebSocketClosed{}
	}
	return nil
}
