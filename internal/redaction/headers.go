// headers.go - Header and query-string filtering applied to every HAR entry.
package redaction

import (
	"net/url"
	"sort"
	"strings"

	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
)

// AuthorizationHeader is dropped from every request, matched exactly.
const AuthorizationHeader = "Authorization"

// TokenSubstring is matched case-insensitively against header names on both sides.
const TokenSubstring = "token"

// Policy decides which headers survive into the HAR.
type Policy struct {
	requestNames []string
	substrings   []string
	values       *Engine
}

// NewPolicy returns a policy that always drops Authorization from requests
// and any header containing "token", plus the given extras. extraRequestNames
// are exact names dropped on the request side; extraSubstrings are matched
// case-insensitively on both sides. values, when non-nil, masks secrets in
// the values of kept headers.
func NewPolicy(extraRequestNames, extraSubstrings []string, values *Engine) *Policy {
	p := &Policy{
		requestNames: []string{AuthorizationHeader},
		substrings:   []string{TokenSubstring},
		values:       values,
	}
	for _, n := range extraRequestNames {
		if n != "" {
			p.requestNames = append(p.requestNames, n)
		}
	}
	for _, s := range extraSubstrings {
		if s != "" {
			p.substrings = append(p.substrings, strings.ToLower(s))
		}
	}
	return p
}

// DefaultPolicy drops only the built-in headers and keeps values verbatim.
func DefaultPolicy() *Policy {
	return NewPolicy(nil, nil, nil)
}

// RequestHeaders filters request headers, sorted by name.
func (p *Policy) RequestHeaders(headers map[string]string) []har.NameValue {
	return p.filter(headers, true)
}

// ResponseHeaders filters response headers, sorted by name.
func (p *Policy) ResponseHeaders(headers map[string]string) []har.NameValue {
	return p.filter(headers, false)
}

// Dropped reports whether a header name is removed on the given side.
func (p *Policy) Dropped(name string, requestSide bool) bool {
	if requestSide {
		for _, n := range p.requestNames {
			if name == n {
				return true
			}
		}
	}
	lower := strings.ToLower(name)
	for _, s := range p.substrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func (p *Policy) filter(headers map[string]string, requestSide bool) []har.NameValue {
	out := make([]har.NameValue, 0, len(headers))
	for name, value := range headers {
		if p.Dropped(name, requestSide) {
			continue
		}
		out = append(out, har.NameValue{Name: name, Value: p.values.Redact(value)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// QueryString extracts query parameters from a URL as name/value pairs,
// dropping parameters whose name matches a blocked substring.
func (p *Policy) QueryString(rawURL string) []har.NameValue {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return make([]har.NameValue, 0)
	}
	params := parsed.Query()
	if len(params) == 0 {
		return make([]har.NameValue, 0)
	}
	result := make([]har.NameValue, 0, len(params))
	for name, values := range params {
		if p.Dropped(name, false) {
			continue
		}
		for _, val := range values {
			result = append(result, har.NameValue{Name: name, Value: val})
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
