package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhecquet/seleniumRobot-sub007/internal/aggregate"
	"github.com/bhecquet/seleniumRobot-sub007/internal/cdp"
	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
)

func completeHTTPBag() *aggregate.Bag {
	return &aggregate.Bag{
		RequestID: "3149.1",
		RequestWillBeSent: &cdp.RequestWillBeSent{
			Timestamp: f64(100.25),
			WallTime:  f64(1739264540.5),
			Request: &cdp.Request{
				Method: "GET",
				URL:    "http://10.200.38.44:51230/testIFrame3.html?lang=fr&session_token=abc",
				Headers: cdp.Headers{
					"Accept":        "text/html",
					"Authorization": "Basic Zm9vOmJhcg==",
				},
			},
		},
		ResponseReceived: &cdp.ResponseReceived{
			Timestamp: f64(100.5),
			Response: &cdp.Response{
				URL:               "http://10.200.38.44:51230/testIFrame3.html",
				Status:            intp(200),
				StatusText:        "OK",
				Protocol:          "http/1.1",
				MimeType:          "text/html",
				EncodedDataLength: 101,
				Headers: cdp.Headers{
					"Content-Length": "124",
					"Server":         "Jetty(11.0.24)",
					"X-Csrf-Token":   "secret",
				},
				Timing: &cdp.ResourceTiming{
					RequestTime:         f64(100.25),
					ProxyStart:          f64(2.804),
					ProxyEnd:            4.019,
					DNSStart:            f64(-1),
					DNSEnd:              f64(-1),
					ConnectStart:        f64(-1),
					ConnectEnd:          f64(-1),
					SSLStart:            f64(-1),
					SSLEnd:              f64(-1),
					SendStart:           f64(4.129),
					SendEnd:             f64(4.238),
					ReceiveHeadersStart: f64(5.365),
					ReceiveHeadersEnd:   f64(11.977),
				},
			},
		},
		LoadingFinished: &cdp.LoadingFinished{Timestamp: f64(100.75)},
	}
}

func TestHTTPEntryComplete(t *testing.T) {
	t.Parallel()
	b, idx := testBuilder()

	entry, err := b.HTTPEntry(completeHTTPBag())
	require.NoError(t, err)

	assert.Equal(t, "page_1", entry.Pageref)
	assert.Equal(t, "2025-02-11T09:02:20.500Z", entry.StartedDateTime)
	assert.Equal(t, 500, entry.Time)
	assert.False(t, entry.IsWebSocket())

	req := entry.Request
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "http://10.200.38.44:51230/testIFrame3.html?lang=fr&session_token=abc", req.URL)
	assert.Equal(t, HTTPVersionUnknown, req.HTTPVersion)
	assert.Equal(t, []har.NameValue{{Name: "Accept", Value: "text/html"}}, req.Headers)
	assert.Equal(t, []har.NameValue{{Name: "lang", Value: "fr"}}, req.QueryString)
	assert.NotNil(t, req.Cookies)

	resp := entry.Response
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "OK", resp.StatusText)
	assert.Equal(t, "http/1.1", resp.HTTPVersion)
	assert.Equal(t, []har.NameValue{
		{Name: "Content-Length", Value: "124"},
		{Name: "Server", Value: "Jetty(11.0.24)"},
	}, resp.Headers)
	assert.Equal(t, har.Content{Size: 124, MimeType: "text/html", Text: MaskedContent}, resp.Content)
	assert.Equal(t, 101, resp.HeadersSize)
	assert.Equal(t, 124, resp.BodySize)

	tm := entry.Timings
	assert.InDelta(t, 2.804, tm.Blocked, 1e-9)
	assert.Equal(t, -1.0, tm.DNS)
	assert.Equal(t, -1.0, tm.Connect)
	assert.Equal(t, -1.0, tm.SSL)
	assert.InDelta(t, 0.109, tm.Send, 1e-9)
	assert.InDelta(t, 1.127, tm.Wait, 1e-9)
	assert.InDelta(t, 500-11.977, tm.Receive, 1e-6)

	require.Len(t, idx.UsedPages(), 1)
	assert.Equal(t, "page_1", idx.UsedPages()[0].ID)
}

func TestHTTPEntryExtraInfoOverrides(t *testing.T) {
	t.Parallel()
	b, _ := testBuilder()
	bag := completeHTTPBag()
	bag.RequestWillBeSentExtraInfo = &cdp.RequestWillBeSentExtraInfo{
		Headers: cdp.Headers{"Cookie": "a=b", "Authorization": "Bearer x"},
	}
	bag.ResponseReceivedExtraInfo = &cdp.ResponseReceivedExtraInfo{StatusCode: intp(304)}

	entry, err := b.HTTPEntry(bag)
	require.NoError(t, err)
	assert.Equal(t, []har.NameValue{{Name: "Cookie", Value: "a=b"}}, entry.Request.Headers, "extra info replaces, not merges")
	assert.Equal(t, 304, entry.Response.Status)
}

func TestHTTPEntryWithoutResponse(t *testing.T) {
	t.Parallel()

	t.Run("generic text", func(t *testing.T) {
		b, _ := testBuilder()
		bag := completeHTTPBag()
		bag.ResponseReceived = nil
		bag.LoadingFinished = nil

		entry, err := b.HTTPEntry(bag)
		require.NoError(t, err)
		assert.Equal(t, 0, entry.Response.Status)
		assert.Empty(t, entry.Response.HTTPVersion, "no protocol without a response")
		assert.Equal(t, NoResponseText, entry.Response.StatusText)
		assert.Equal(t, -1, entry.Response.BodySize)
		assert.Equal(t, -1, entry.Response.HeadersSize)
		assert.Equal(t, UnknownMimeType, entry.Response.Content.MimeType)
		assert.Equal(t, har.EmptyTimings(), entry.Timings)
		assert.Equal(t, -1, entry.Time)
	})

	t.Run("loading failed text", func(t *testing.T) {
		b, _ := testBuilder()
		bag := completeHTTPBag()
		bag.ResponseReceived = nil
		bag.LoadingFailed = &cdp.LoadingFailed{ErrorText: "net::ERR_CONNECTION_REFUSED"}

		entry, err := b.HTTPEntry(bag)
		require.NoError(t, err)
		assert.Equal(t, "net::ERR_CONNECTION_REFUSED", entry.Response.StatusText)
	})
}

func TestHTTPEntryLoadEndFallsBackToResponse(t *testing.T) {
	t.Parallel()
	b, _ := testBuilder()
	bag := completeHTTPBag()
	bag.LoadingFinished = nil

	entry, err := b.HTTPEntry(bag)
	require.NoError(t, err)
	assert.Equal(t, 250, entry.Time)
	assert.InDelta(t, 250-11.977, entry.Timings.Receive, 1e-6)
}

func TestHTTPEntryWithoutTiming(t *testing.T) {
	t.Parallel()
	b, _ := testBuilder()
	bag := completeHTTPBag()
	bag.ResponseReceived.Response.Timing = nil

	entry, err := b.HTTPEntry(bag)
	require.NoError(t, err)
	assert.Equal(t, har.EmptyTimings(), entry.Timings)
	assert.Equal(t, 500, entry.Time, "duration does not depend on timing")
}

func TestHTTPEntryBeforeFirstPage(t *testing.T) {
	t.Parallel()
	b, _ := testBuilder()
	bag := completeHTTPBag()
	bag.RequestWillBeSent.WallTime = f64(1000)

	entry, err := b.HTTPEntry(bag)
	require.NoError(t, err)
	assert.Equal(t, "page_0", entry.Pageref)
}

func TestHTTPEntryWithoutPages(t *testing.T) {
	t.Parallel()
	b := New(nil, nil, nil)

	entry, err := b.HTTPEntry(completeHTTPBag())
	require.NoError(t, err)
	assert.Empty(t, entry.Pageref)
}

func TestHTTPEntryInvalidBag(t *testing.T) {
	t.Parallel()
	b, idx := testBuilder()
	bag := completeHTTPBag()
	bag.ResponseReceived.Response.Status = nil

	_, err := b.HTTPEntry(bag)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Empty(t, idx.UsedPages(), "a rejected bag does not mark pages")
}

func TestHTTPEntryIncompleteTimingIsZeroStub(t *testing.T) {
	t.Parallel()
	b, _ := testBuilder()
	bag := completeHTTPBag()
	bag.ResponseReceived.Response.Timing.ReceiveHeadersStart = nil

	entry, err := b.HTTPEntry(bag)
	require.NoError(t, err)

	assert.Equal(t, har.EmptyTimings(), entry.Timings)
	assert.Equal(t, 500, entry.Time)
}
