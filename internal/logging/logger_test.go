package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestErrorWritesJSONLine(t *testing.T) {
	buf := capture(t)
	fields := Fields{"session": "abc"}
	Error("boom", errors.New("bad"), fields)

	var got map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if got["level"] != "error" || got["msg"] != "boom" || got["error"] != "bad" || got["session"] != "abc" {
		t.Fatalf("unexpected fields: %v", got)
	}
	if _, leaked := fields["error"]; leaked {
		t.Fatal("caller fields were mutated")
	}
}

func TestDebugGated(t *testing.T) {
	buf := capture(t)
	Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("debug logged while disabled: %q", buf.String())
	}
	SetDebug(true)
	defer SetDebug(false)
	Debug("shown", nil)
	if buf.Len() == 0 {
		t.Fatal("debug not logged while enabled")
	}
}
