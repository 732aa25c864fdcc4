// payload.go - WebSocket payload previews.
package redaction

// ShortPayloadNotice replaces payloads too short to preview without
// disclosing most of their content.
const ShortPayloadNotice = "Payloads less than 20 chars are redacted."

const (
	previewThreshold = 20
	previewEdge      = 10
	previewElision   = " [...] "
)

// PayloadPreview keeps the first and last 10 characters of payloads longer
// than 20 characters and replaces shorter ones with ShortPayloadNotice.
// Lengths count runes, not bytes.
func PayloadPreview(payload string) string {
	runes := []rune(payload)
	if len(runes) <= previewThreshold {
		return ShortPayloadNotice
	}
	return string(runes[:previewEdge]) + previewElision + string(runes[len(runes)-previewEdge:])
}
