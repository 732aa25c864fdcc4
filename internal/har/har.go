// har.go - HAR 1.2 document model with Chrome's WebSocket extension fields.
// Field names are camelCase per http://www.softwareishard.com/blog/har-12-spec/
// Non-standard fields carry the leading underscore Chrome DevTools uses when
// it exports WebSocket traffic (_resourceType, _webSocketMessages).
package har

// Version is the HAR format version written in every document.
const Version = "1.2"

// ResourceTypeWebSocket marks entries built from Network.webSocket* events.
const ResourceTypeWebSocket = "websocket"

// ============================================
// HAR 1.2 Types
// ============================================

// Har is the top-level HAR structure.
type Har struct {
	Log Log `json:"log"`
}

// Log contains the HAR version, creator, pages, and entries.
type Log struct {
	Version string  `json:"version"`
	Creator Creator `json:"creator"`
	Pages   []Page  `json:"pages"`
	Entries []Entry `json:"entries"`
}

// Creator identifies the tool that generated the HAR.
type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Page is one test step.
type Page struct {
	StartedDateTime string      `json:"startedDateTime"`
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	PageTimings     PageTimings `json:"pageTimings"`
}

// PageTimings is required by HAR; -1 marks values that were not measured.
type PageTimings struct {
	OnContentLoad float64 `json:"onContentLoad"`
	OnLoad        float64 `json:"onLoad"`
}

// Entry represents a single HTTP exchange or WebSocket session.
type Entry struct {
	Pageref           string             `json:"pageref,omitempty"`
	StartedDateTime   string             `json:"startedDateTime"`
	Time              int                `json:"time"` // total elapsed time in ms
	Request           Request            `json:"request"`
	Response          Response           `json:"response"`
	Cache             struct{}           `json:"cache"`
	Timings           Timings            `json:"timings"`
	ResourceType      string             `json:"_resourceType,omitempty"`
	WebSocketMessages []WebSocketMessage `json:"_webSocketMessages,omitempty"`
}

// IsWebSocket reports whether the entry describes a WebSocket session.
func (e Entry) IsWebSocket() bool {
	return e.ResourceType == ResourceTypeWebSocket
}

// Request represents an HTTP request.
type Request struct {
	Method      string      `json:"method"`
	URL         string      `json:"url"`
	HTTPVersion string      `json:"httpVersion"`
	Cookies     []Cookie    `json:"cookies"`
	Headers     []NameValue `json:"headers"`
	QueryString []NameValue `json:"queryString"`
	HeadersSize int         `json:"headersSize"`
	BodySize    int         `json:"bodySize"`
}

// Response represents an HTTP response.
type Response struct {
	Status      int         `json:"status"`
	StatusText  string      `json:"statusText"`
	HTTPVersion string      `json:"httpVersion"`
	Cookies     []Cookie    `json:"cookies"`
	Headers     []NameValue `json:"headers"`
	Content     Content     `json:"content"`
	RedirectURL string      `json:"redirectURL"`
	HeadersSize int         `json:"headersSize"`
	BodySize    int         `json:"bodySize"`
}

// Content represents response body content.
type Content struct {
	Size     int    `json:"size"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text,omitempty"`
}

// Timings is the phase breakdown in milliseconds; -1 means not applicable.
type Timings struct {
	Blocked float64 `json:"blocked"`
	DNS     float64 `json:"dns"`
	Connect float64 `json:"connect"`
	SSL     float64 `json:"ssl"`
	Send    float64 `json:"send"`
	Wait    float64 `json:"wait"`
	Receive float64 `json:"receive"`
}

// NameValue is a generic name/value pair for headers and query params.
type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Cookie is a HAR cookie. Cookies are never extracted, the type exists so
// the cookies arrays serialize as [] rather than null.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WebSocketMessage is one frame in Chrome's _webSocketMessages format.
type WebSocketMessage struct {
	Type   string  `json:"type"` // "send" or "receive"
	Time   float64 `json:"time"` // seconds, CDP monotonic clock
	Opcode int     `json:"opcode"`
	Data   string  `json:"data"`
}

// ============================================
// Construction
// ============================================

// New returns an empty document.
func New(creatorName, creatorVersion string) *Har {
	return &Har{
		Log: Log{
			Version: Version,
			Creator: Creator{Name: creatorName, Version: creatorVersion},
			Pages:   make([]Page, 0),
			Entries: make([]Entry, 0),
		},
	}
}

// AddEntry appends an entry.
func (l *Log) AddEntry(e Entry) {
	l.Entries = append(l.Entries, e)
}

// AddPage appends a page.
func (l *Log) AddPage(p Page) {
	l.Pages = append(l.Pages, p)
}

// EmptyTimings is the all-zero stub used when the browser reported no timing.
func EmptyTimings() Timings {
	return Timings{}
}
