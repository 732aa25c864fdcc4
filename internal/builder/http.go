// http.go - HTTP entry construction.
package builder

import (
	"github.com/bhecquet/seleniumRobot-sub007/internal/aggregate"
	"github.com/bhecquet/seleniumRobot-sub007/internal/cdp"
	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
)

// HTTPEntry builds the entry for a bag holding Network.requestWillBeSent.
// The bag is validated first; a bag that fails validation yields an error
// wrapping ErrMissingRequest or ErrMissingField and no entry.
func (b *Builder) HTTPEntry(bag *aggregate.Bag) (har.Entry, error) {
	if err := ValidateHTTP(bag); err != nil {
		return har.Entry{}, err
	}
	rwbs := bag.RequestWillBeSent

	entry := har.Entry{
		Request:  b.httpRequest(bag),
		Response: b.httpResponse(bag),
		Timings:  har.EmptyTimings(),
		Time:     notApplicable,
	}

	if rr := bag.ResponseReceived; rr != nil {
		loadEnd := *rr.Timestamp
		if lf := bag.LoadingFinished; lf != nil && lf.Timestamp != nil {
			loadEnd = *lf.Timestamp
		}
		entry.Timings = Timings(rr.Response.Timing, loadEnd)
		entry.Time = durationMs(*rwbs.Timestamp, loadEnd)
	}

	startedMs := har.EpochMillis(*rwbs.WallTime)
	entry.Pageref = b.index.PageIDFor(startedMs)
	entry.StartedDateTime = b.startedDateTime(startedMs)
	return entry, nil
}

func (b *Builder) httpRequest(bag *aggregate.Bag) har.Request {
	req := bag.RequestWillBeSent.Request
	headers := req.Headers
	if extra := bag.RequestWillBeSentExtraInfo; extra != nil {
		headers = extra.Headers
	}
	return har.Request{
		Method:      req.Method,
		URL:         req.URL,
		HTTPVersion: HTTPVersionUnknown,
		Cookies:     emptyCookies(),
		Headers:     b.policy.RequestHeaders(headers),
		QueryString: b.policy.QueryString(req.URL),
		HeadersSize: notApplicable,
		BodySize:    0,
	}
}

func (b *Builder) httpResponse(bag *aggregate.Bag) har.Response {
	rr := bag.ResponseReceived
	if rr == nil {
		return stubResponse(bag.LoadingFailed)
	}
	resp := rr.Response
	status := *resp.Status
	if extra := bag.ResponseReceivedExtraInfo; extra != nil {
		status = *extra.StatusCode
	}
	size := resp.Headers.ContentLength()
	return har.Response{
		Status:      status,
		StatusText:  resp.StatusText,
		HTTPVersion: resp.Protocol,
		Cookies:     emptyCookies(),
		Headers:     b.policy.ResponseHeaders(resp.Headers),
		Content: har.Content{
			Size:     size,
			MimeType: resp.MimeType,
			Text:     MaskedContent,
		},
		RedirectURL: "",
		HeadersSize: int(resp.EncodedDataLength),
		BodySize:    size,
	}
}

// stubResponse stands in for a response that never arrived.
func stubResponse(failed *cdp.LoadingFailed) har.Response {
	text := NoResponseText
	if failed != nil && failed.ErrorText != "" {
		text = failed.ErrorText
	}
	return har.Response{
		Status:      0,
		StatusText:  text,
		HTTPVersion: "",
		Cookies:     emptyCookies(),
		Headers:     make([]har.NameValue, 0),
		Content:     har.Content{Size: 0, MimeType: UnknownMimeType},
		HeadersSize: notApplicable,
		BodySize:    notApplicable,
	}
}
