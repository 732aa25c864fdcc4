package cdp

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const responseReceivedLine = `{"message":{"method":"Network.responseReceived","params":{"frameId":"8C5E","hasExtraInfo":true,"requestId":"3149.1","response":{"connectionId":109,"encodedDataLength":101,"fromDiskCache":false,"headers":{"Content-Length":"124","Date":"Tue, 11 Feb 2025 09:02:20 GMT","Server":"Jetty(11.0.24)"},"mimeType":"text/html","protocol":"http/1.1","remoteIPAddress":"10.200.38.44","status":200,"statusText":"OK","timing":{"connectEnd":-1,"connectStart":-1,"dnsEnd":-1,"dnsStart":-1,"proxyEnd":4.019,"proxyStart":2.804,"receiveHeadersEnd":11.977,"receiveHeadersStart":5.365,"requestTime":91274.541644,"sendEnd":4.238,"sendStart":4.129,"sslEnd":-1,"sslStart":-1},"url":"http://10.200.38.44:51230/testIFrame3.html"},"timestamp":91274.558756,"type":"Document"}},"webview":"0327E68C"}`

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("responseReceived", func(t *testing.T) {
		ev, err := Classify(RawLogLine{Message: responseReceivedLine})
		require.NoError(t, err)
		assert.Equal(t, "3149.1", ev.RequestID)
		assert.Equal(t, "0327E68C", ev.Webview)
		assert.Equal(t, KindResponseReceived, ev.Kind())

		rr, ok := ev.Payload.(*ResponseReceived)
		require.True(t, ok, "payload type %T", ev.Payload)
		require.NotNil(t, rr.Response)
		require.NotNil(t, rr.Response.Status)
		assert.Equal(t, 200, *rr.Response.Status)
		assert.Equal(t, "http/1.1", rr.Response.Protocol)
		assert.Equal(t, 124, rr.Response.Headers.ContentLength())
		require.NotNil(t, rr.Response.Timing)
		assert.True(t, rr.Response.Timing.Complete())
		assert.Equal(t, -1.0, *rr.Response.Timing.DNSEnd)
		assert.Equal(t, 91274.541644, *rr.Response.Timing.RequestTime)
		require.NotNil(t, rr.Timestamp)
		assert.Equal(t, 91274.558756, *rr.Timestamp)
	})

	t.Run("frame sent keeps direction in its type", func(t *testing.T) {
		line := `{"message":{"method":"Network.webSocketFrameSent","params":{"requestId":"18060.25","response":{"mask":true,"opcode":1,"payloadData":"somePayloadDataItDoesntMatter"},"timestamp":7889.443974}},"webview":"0A33"}`
		ev, err := Classify(RawLogLine{Message: line})
		require.NoError(t, err)
		sent, ok := ev.Payload.(*WebSocketFrameSent)
		require.True(t, ok)
		assert.Equal(t, "18060.25", sent.RequestID)
		assert.Equal(t, 1, sent.Response.Opcode)
		assert.True(t, ev.Kind().IsWebSocket())
	})

	t.Run("non-string header values survive", func(t *testing.T) {
		line := `{"message":{"method":"Network.requestWillBeSentExtraInfo","params":{"requestId":"1.1","headers":{"Content-Length":42,"X-Flag":true,"X-Null":null,"Accept":"*/*"}}}}`
		ev, err := Classify(RawLogLine{Message: line})
		require.NoError(t, err)
		extra := ev.Payload.(*RequestWillBeSentExtraInfo)
		assert.Equal(t, Headers{"Content-Length": "42", "X-Flag": "true", "X-Null": "", "Accept": "*/*"}, extra.Headers)
		assert.Equal(t, 42, extra.Headers.ContentLength())
	})
}

func TestClassifyErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		message string
		want    error
	}{
		{"not json", `{"message":`, ErrMalformedEnvelope},
		{"no message", `{"webview":"x"}`, ErrMalformedEnvelope},
		{"unhandled method", `{"message":{"method":"Page.frameNavigated","params":{}}}`, ErrUnknownMethod},
		{"params wrong type", `{"message":{"method":"Network.loadingFinished","params":{"requestId":"1","timestamp":"soon"}}}`, ErrMalformedParams},
		{"no params", `{"message":{"method":"Network.loadingFinished"}}`, ErrMalformedParams},
		{"no requestId", `{"message":{"method":"Network.loadingFinished","params":{"timestamp":1.5}}}`, ErrMissingRequestID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(RawLogLine{Message: tt.message})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClassifyAllSkipsAndLogs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	lines := []RawLogLine{
		{Message: `garbage`},
		{Message: `{"message":{"method":"Network.loadingFinished","params":{"requestId":"a","timestamp":2.0}}}`},
		{Message: `{"message":{"method":"Page.loadEventFired","params":{"timestamp":2.1}}}`},
		{Message: `{"message":{"method":"Network.webSocketClosed","params":{"requestId":"b","timestamp":3.0}}}`},
	}

	reasons := map[string]int{}
	events := ClassifyAll(lines, logger, func(_ int, _ RawLogLine, err error) {
		reasons[SkipReason(err)]++
	})

	require.Len(t, events, 2)
	assert.Equal(t, KindLoadingFinished, events[0].Kind())
	assert.Equal(t, KindWebSocketClosed, events[1].Kind())
	assert.Equal(t, map[string]int{"malformed_envelope": 1, "unknown_method": 1}, reasons)
	assert.True(t, strings.Contains(buf.String(), "error reading event"))
}

func TestKindForMethodRoundTrip(t *testing.T) {
	t.Parallel()
	for _, k := range Kinds {
		assert.Equal(t, k, KindForMethod(k.String()))
		if p := newPayload(k); assert.NotNil(t, p, "no payload for %v", k) {
			assert.Equal(t, k, p.Kind())
		}
	}
	assert.Equal(t, KindUnknown, KindForMethod("Network.dataReceived"))
}
