// websocket.go - WebSocket session entry construction.
// Fields are refined step by step, each step applied only when its source
// event was logged, so a session seen half-way still yields an entry.
package builder

import (
	"sort"
	"strings"

	"github.com/bhecquet/seleniumRobot-sub007/internal/aggregate"
	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
	"github.com/bhecquet/seleniumRobot-sub007/internal/redaction"
)

// WebSocketEntry builds the entry for a bag holding only Network.webSocket*
// events.
func (b *Builder) WebSocketEntry(bag *aggregate.Bag) (har.Entry, error) {
	if err := ValidateWebSocket(bag); err != nil {
		return har.Entry{}, err
	}

	url := DefaultWebSocketURL
	var req *har.Request
	resp := defaultWebSocketResponse()
	var startedMs int64
	pageref := ""
	duration := notApplicable

	if created := bag.WebSocketCreated; created != nil {
		if created.URL != "" {
			url = created.URL
		}
		req = b.webSocketRequest(url, nil, 0)
	}

	if hr := bag.WebSocketHandshakeResponseReceived; hr != nil {
		r := hr.Response
		if fields := strings.Split(r.RequestHeadersText, " "); len(fields) > 1 {
			url = fields[1]
		}
		req = b.webSocketRequest(url, r.RequestHeaders, r.RequestHeaders.ContentLength())
		resp = har.Response{
			Status:      r.Status,
			StatusText:  r.StatusText,
			HTTPVersion: strings.Split(r.HeadersText, " ")[0],
			Cookies:     emptyCookies(),
			Headers:     b.policy.ResponseHeaders(r.Headers),
			Content:     har.Content{Size: 0, MimeType: UnknownMimeType},
			BodySize:    r.Headers.ContentLength(),
		}
	}

	if hs := bag.WebSocketWillSendHandshakeRequest; hs != nil {
		startedMs = har.EpochMillis(*hs.WallTime)
		pageref = b.index.PageIDFor(startedMs)
		if req == nil {
			req = b.webSocketRequest(url, hs.Request.Headers, hs.Request.Headers.ContentLength())
		}
		if closed := bag.WebSocketClosed; closed != nil {
			duration = durationMs(*hs.Timestamp, *closed.Timestamp)
		}
	}

	if req == nil {
		req = &har.Request{
			Cookies:     emptyCookies(),
			Headers:     make([]har.NameValue, 0),
			QueryString: make([]har.NameValue, 0),
		}
	}

	return har.Entry{
		Pageref:           pageref,
		StartedDateTime:   b.startedDateTime(startedMs),
		Time:              duration,
		Request:           *req,
		Response:          resp,
		Timings:           har.EmptyTimings(),
		ResourceType:      har.ResourceTypeWebSocket,
		WebSocketMessages: webSocketMessages(bag.Frames),
	}, nil
}

func (b *Builder) webSocketRequest(url string, headers map[string]string, bodySize int) *har.Request {
	return &har.Request{
		Method:      "GET",
		URL:         url,
		HTTPVersion: HTTPVersionUnknown,
		Cookies:     emptyCookies(),
		Headers:     b.policy.RequestHeaders(headers),
		QueryString: b.policy.QueryString(url),
		HeadersSize: notApplicable,
		BodySize:    bodySize,
	}
}

func defaultWebSocketResponse() har.Response {
	return har.Response{
		Status:      0,
		StatusText:  "",
		HTTPVersion: "",
		Cookies:     emptyCookies(),
		Headers:     make([]har.NameValue, 0),
		Content:     har.Content{Size: 0, MimeType: UnknownMimeType},
	}
}

// webSocketMessages converts frames to messages sorted by time. Frames with
// equal timestamps keep their arrival order.
func webSocketMessages(frames []aggregate.Frame) []har.WebSocketMessage {
	msgs := make([]har.WebSocketMessage, 0, len(frames))
	for _, f := range frames {
		msgs = append(msgs, har.WebSocketMessage{
			Type:   string(f.Direction),
			Time:   *f.Event.Timestamp,
			Opcode: f.Event.Response.Opcode,
			Data:   redaction.PayloadPreview(f.Event.Response.PayloadData),
		})
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Time < msgs[j].Time })
	return msgs
}
