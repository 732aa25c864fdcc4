package har

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSerializesEmptyArrays(t *testing.T) {
	t.Parallel()
	doc := New("seleniumRobot", "test-version")

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"pages":[]`) {
		t.Errorf("expected empty pages array, got %s", s)
	}
	if !strings.Contains(s, `"entries":[]`) {
		t.Errorf("expected empty entries array, got %s", s)
	}
	if !strings.Contains(s, `"version":"1.2"`) {
		t.Errorf("expected HAR version 1.2, got %s", s)
	}
}

func TestWebSocketEntryExtensionFields(t *testing.T) {
	t.Parallel()
	entry := Entry{
		ResourceType: ResourceTypeWebSocket,
		WebSocketMessages: []WebSocketMessage{
			{Type: "send", Time: 7889.44, Opcode: 1, Data: "hello"},
		},
	}
	if !entry.IsWebSocket() {
		t.Fatal("expected websocket entry")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"_resourceType":"websocket"`, `"_webSocketMessages":[{"type":"send"`, `"cache":{}`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
	if strings.Contains(s, `"pageref"`) {
		t.Errorf("expected empty pageref to be omitted, got %s", s)
	}
}

func TestHTTPEntryOmitsExtensionFields(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(Entry{Pageref: "page_0"})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "_resourceType") || strings.Contains(s, "_webSocketMessages") {
		t.Errorf("expected no websocket fields on HTTP entry, got %s", s)
	}
}

func TestOpcodeName(t *testing.T) {
	t.Parallel()
	tests := map[int]string{0: "continuation", 1: "text", 2: "binary", 8: "close", 9: "ping", 10: "pong", 3: "reserved"}
	for op, want := range tests {
		if got := OpcodeName(op); got != want {
			t.Errorf("OpcodeName(%d) = %q, want %q", op, got, want)
		}
	}
	if !(WebSocketMessage{Opcode: 9}).IsControl() {
		t.Error("expected ping to be a control frame")
	}
	if (WebSocketMessage{Opcode: 1}).IsControl() {
		t.Error("expected text not to be a control frame")
	}
}
