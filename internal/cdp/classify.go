// classify.go - Parses performance-log lines into typed network events.
package cdp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrMalformedEnvelope means the line is not a {"message":{...}} JSON envelope.
	ErrMalformedEnvelope = errors.New("malformed log envelope")
	// ErrUnknownMethod means the method is not one HAR synthesis reads.
	ErrUnknownMethod = errors.New("unhandled method")
	// ErrMalformedParams means params did not decode into the method's payload.
	ErrMalformedParams = errors.New("malformed params")
	// ErrMissingRequestID means params carried no requestId.
	ErrMissingRequestID = errors.New("missing requestId")
)

// RawLogLine is one entry returned by the WebDriver performance log.
type RawLogLine struct {
	Message string `json:"message"`
}

type envelope struct {
	Message *struct {
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	} `json:"message"`
	Webview string `json:"webview"`
}

// Classify decodes one line. The returned error wraps one of the package
// sentinels so callers can tell noise (ErrUnknownMethod) from damage.
func Classify(line RawLogLine) (Event, error) {
	var env envelope
	if err := json.Unmarshal([]byte(line.Message), &env); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Message == nil || env.Message.Method == "" {
		return Event{}, fmt.Errorf("%w: no message.method", ErrMalformedEnvelope)
	}

	kind := KindForMethod(env.Message.Method)
	if kind == KindUnknown {
		return Event{}, fmt.Errorf("%w: %s", ErrUnknownMethod, env.Message.Method)
	}

	payload := newPayload(kind)
	if len(env.Message.Params) == 0 {
		return Event{}, fmt.Errorf("%w: %s has no params", ErrMalformedParams, env.Message.Method)
	}
	if err := json.Unmarshal(env.Message.Params, payload); err != nil {
		return Event{}, fmt.Errorf("%w: %s: %v", ErrMalformedParams, env.Message.Method, err)
	}
	if payload.requestID() == "" {
		return Event{}, fmt.Errorf("%w: %s", ErrMissingRequestID, env.Message.Method)
	}

	return Event{
		RequestID: payload.requestID(),
		Webview:   env.Webview,
		Payload:   payload,
	}, nil
}

// SkipFunc observes a line that Classify rejected.
type SkipFunc func(index int, line RawLogLine, err error)

// ClassifyAll classifies lines in order, dropping the ones Classify rejects.
// Unknown methods are logged at debug level since most of the performance log
// is Page.* and Runtime.* traffic; damaged lines are logged as errors.
func ClassifyAll(lines []RawLogLine, logger *slog.Logger, onSkip SkipFunc) []Event {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	events := make([]Event, 0, len(lines))
	for i, line := range lines {
		ev, err := Classify(line)
		if err != nil {
			if errors.Is(err, ErrUnknownMethod) {
				logger.Debug("skipping log line", "index", i, "reason", err.Error())
			} else {
				logger.Error("error reading event", "index", i, "error", err, "message", line.Message)
			}
			if onSkip != nil {
				onSkip(i, line, err)
			}
			continue
		}
		events = append(events, ev)
	}
	return events
}

// SkipReason maps a Classify error to a short label for counters.
func SkipReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownMethod):
		return "unknown_method"
	case errors.Is(err, ErrMalformedEnvelope):
		return "malformed_envelope"
	case errors.Is(err, ErrMalformedParams):
		return "malformed_params"
	case errors.Is(err, ErrMissingRequestID):
		return "missing_request_id"
	default:
		return "other"
	}
}
