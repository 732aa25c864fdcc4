// input.go - Readers for performance logs and step files.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bhecquet/seleniumRobot-sub007/internal/cdp"
	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
	"github.com/bhecquet/seleniumRobot-sub007/internal/timeline"
)

// maxLineBytes bounds one NDJSON line; frame payloads can be large.
const maxLineBytes = 16 << 20

// logRecord is one element of a WebDriver log dump. message is normally a
// JSON string holding the CDP envelope; some tools write the envelope itself.
type logRecord struct {
	Message json.RawMessage `json:"message"`
}

// toLine returns the CDP envelope text for raw, which is either a log record
// or the envelope itself.
func toLine(raw []byte) (cdp.RawLogLine, error) {
	var rec logRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return cdp.RawLogLine{}, err
	}
	msg := bytes.TrimSpace(rec.Message)
	if len(msg) > 0 && msg[0] == '"' {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return cdp.RawLogLine{}, err
		}
		return cdp.RawLogLine{Message: s}, nil
	}
	return cdp.RawLogLine{Message: string(raw)}, nil
}

// readLogLines reads a JSON array of log records or newline-delimited
// records. A line that is not JSON is passed through so the classifier can
// count it as malformed.
func readLogLines(r io.Reader) ([]cdp.RawLogLine, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if first == '[' {
		var records []json.RawMessage
		if err := json.NewDecoder(br).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode log array: %w", err)
		}
		lines := make([]cdp.RawLogLine, 0, len(records))
		for _, raw := range records {
			line, err := toLine(raw)
			if err != nil {
				line = cdp.RawLogLine{Message: string(raw)}
			}
			lines = append(lines, line)
		}
		return lines, nil
	}

	var lines []cdp.RawLogLine
	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		line, err := toLine(text)
		if err != nil {
			line = cdp.RawLogLine{Message: string(text)}
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log lines: %w", err)
	}
	return lines, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

func readLogFile(path string) ([]cdp.RawLogLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLogLines(f)
}

// stepTime accepts RFC3339 text or integer epoch milliseconds.
type stepTime time.Time

func (st *stepTime) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: started_at must be a scalar", value.Line)
	}
	if ms, err := strconv.ParseInt(value.Value, 10, 64); err == nil {
		*st = stepTime(time.UnixMilli(ms))
		return nil
	}
	t := har.ParseTimestamp(value.Value)
	if t.IsZero() {
		return fmt.Errorf("line %d: started_at %q is neither RFC3339 nor epoch milliseconds", value.Line, value.Value)
	}
	*st = stepTime(t)
	return nil
}

type stepRecord struct {
	StartedAt *stepTime `yaml:"started_at"`
	Label     string    `yaml:"label"`
}

// readSteps parses a YAML (or JSON) list of {started_at, label}.
func readSteps(data []byte) ([]timeline.Step, error) {
	var records []stepRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse steps: %w", err)
	}
	steps := make([]timeline.Step, 0, len(records))
	for i, rec := range records {
		if rec.StartedAt == nil {
			return nil, fmt.Errorf("step %d: started_at is required", i)
		}
		steps = append(steps, timeline.Step{StartedAt: time.Time(*rec.StartedAt), Label: rec.Label})
	}
	return steps, nil
}

func readStepsFile(path string) ([]timeline.Step, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return readSteps(data)
}
