// doc.go - Package documentation for Chrome DevTools Protocol network events.

// Package cdp classifies WebDriver performance-log lines into typed Chrome
// DevTools Protocol network events.
//
// A performance-log line is a JSON envelope of the form
//
//	{"message":{"method":"Network.responseReceived","params":{...}},"webview":"..."}
//
// Only the Network.* methods that contribute to a HAR document are recognized;
// every other method is reported as ErrUnknownMethod so callers can skip it.
// Each recognized method maps to one Kind and one payload type holding the
// fields the HAR builders read.
//
// Required-ness: fields whose absence changes how an entry is built are
// pointers (nil means "not sent by the browser"). Everything else decodes to
// its zero value.
package cdp
