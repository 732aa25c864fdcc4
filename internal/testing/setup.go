// setup.go - Shared test fixtures for performance-log consumers.
// This file is NOT a test file (no _test.go suffix) so it can be imported by tests in other packages.
package testing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bhecquet/seleniumRobot-sub007/internal/cdp"
)

// Webview is the target id stamped on every generated line.
const Webview = "0327E68C"

// LogLine wraps a method and its params the way the WebDriver performance log does.
func LogLine(t *testing.T, method string, params map[string]any) cdp.RawLogLine {
	t.Helper()
	msg, err := json.Marshal(map[string]any{
		"message": map[string]any{"method": method, "params": params},
		"webview": Webview,
	})
	if err != nil {
		t.Fatalf("marshal %s: %v", method, err)
	}
	return cdp.RawLogLine{Message: string(msg)}
}

// WriteLogFile dumps lines as a JSON array of {"level", "message"} records,
// the shape driver.manage().logs().get("performance") is usually saved in.
func WriteLogFile(t *testing.T, lines []cdp.RawLogLine) string {
	t.Helper()

	type record struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}
	records := make([]record, len(lines))
	for i, l := range lines {
		records[i] = record{Level: "INFO", Message: l.Message}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		t.Fatalf("marshal log: %v", err)
	}

	path := filepath.Join(t.TempDir(), "performance.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}
