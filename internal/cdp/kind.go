// kind.go - Closed set of network event kinds and their CDP method names.
package cdp

// Kind identifies one of the Network.* events that feed HAR synthesis.
type Kind int

const (
	KindUnknown Kind = iota
	KindRequestWillBeSent
	KindRequestWillBeSentExtraInfo
	KindResponseReceived
	KindResponseReceivedExtraInfo
	KindLoadingFinished
	KindLoadingFailed
	KindWebSocketCreated
	KindWebSocketWillSendHandshakeRequest
	KindWebSocketHandshakeResponseReceived
	KindWebSocketFrameSent
	KindWebSocketFrameReceived
	KindWebSocketClosed
)

// Kinds lists every known kind in declaration order.
var Kinds = []Kind{
	KindRequestWillBeSent,
	KindRequestWillBeSentExtraInfo,
	KindResponseReceived,
	KindResponseReceivedExtraInfo,
	KindLoadingFinished,
	KindLoadingFailed,
	KindWebSocketCreated,
	KindWebSocketWillSendHandshakeRequest,
	KindWebSocketHandshakeResponseReceived,
	KindWebSocketFrameSent,
	KindWebSocketFrameReceived,
	KindWebSocketClosed,
}

var kindMethods = map[Kind]string{
	KindRequestWillBeSent:                  "Network.requestWillBeSent",
	KindRequestWillBeSentExtraInfo:         "Network.requestWillBeSentExtraInfo",
	KindResponseReceived:                   "Network.responseReceived",
	KindResponseReceivedExtraInfo:          "Network.responseReceivedExtraInfo",
	KindLoadingFinished:                    "Network.loadingFinished",
	KindLoadingFailed:                      "Network.loadingFailed",
	KindWebSocketCreated:                   "Network.webSocketCreated",
	KindWebSocketWillSendHandshakeRequest:  "Network.webSocketWillSendHandshakeRequest",
	KindWebSocketHandshakeResponseReceived: "Network.webSocketHandshakeResponseReceived",
	KindWebSocketFrameSent:                 "Network.webSocketFrameSent",
	KindWebSocketFrameReceived:             "Network.webSocketFrameReceived",
	KindWebSocketClosed:                    "Network.webSocketClosed",
}

var methodKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindMethods))
	for k, method := range kindMethods {
		m[method] = k
	}
	return m
}()

// KindForMethod returns the kind for a CDP method name, or KindUnknown.
func KindForMethod(method string) Kind {
	return methodKinds[method]
}

// String returns the CDP method name, e.g. "Network.loadingFinished".
func (k Kind) String() string {
	if m, ok := kindMethods[k]; ok {
		return m
	}
	return "unknown"
}

// IsWebSocket reports whether k belongs to the Network.webSocket* family.
func (k Kind) IsWebSocket() bool {
	return k >= KindWebSocketCreated && k <= KindWebSocketClosed
}
