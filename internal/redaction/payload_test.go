package redaction

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPayloadPreview(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"25 chars", "ABCDEFGHIJklmnoQRSTUVWXYZ", "ABCDEFGHIJ [...] QRSTUVWXYZ"},
		{"15 chars", "short payload!!", ShortPayloadNotice},
		{"exactly 20", strings.Repeat("x", 20), ShortPayloadNotice},
		{"21 chars", "0123456789A0123456789", "0123456789 [...] 0123456789"},
		{"empty", "", ShortPayloadNotice},
		{"real frame", "somePayloadDataItDoesntMatter", "somePayloa [...] esntMatter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PayloadPreview(tt.payload); got != tt.want {
				t.Errorf("PayloadPreview(%q) = %q, want %q", tt.payload, got, tt.want)
			}
		})
	}
}

func TestPayloadPreviewCountsRunes(t *testing.T) {
	t.Parallel()
	payload := strings.Repeat("é", 12) + strings.Repeat("ü", 12)
	got := PayloadPreview(payload)
	want := strings.Repeat("é", 10) + " [...] " + strings.Repeat("ü", 10)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// FuzzPayloadPreview: output is either the notice or exactly 27 runes, and
// never longer than the notice for short inputs.
func FuzzPayloadPreview(f *testing.F) {
	f.Add("")
	f.Add("somePayloadDataItDoesntMatter")
	f.Add(strings.Repeat("a", 10000))
	f.Add("\x00\xff\xfe")

	f.Fuzz(func(t *testing.T, input string) {
		got := PayloadPreview(input)
		if utf8.RuneCountInString(input) <= 20 {
			if got != ShortPayloadNotice {
				t.Fatalf("short input %q not redacted: %q", input, got)
			}
			return
		}
		if n := utf8.RuneCountInString(got); n != 27 {
			t.Fatalf("preview of %q has %d runes: %q", input, n, got)
		}
	})
}
