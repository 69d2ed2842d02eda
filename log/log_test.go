package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(InfoLevel)
	})

	SetLevel(InfoLevel)
	Debugf("hidden %d", 1)
	WithFields(Fields{"code": "panel.write"}).Info("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "code=panel.write") {
		t.Fatalf("unexpected output at info level:\n%s", out)
	}

	buf.Reset()
	SetLevel(DebugLevel)
	Debugf("visible %d", 2)
	if !strings.Contains(buf.String(), "visible 2") {
		t.Fatalf("debug line missing:\n%s", buf.String())
	}
}
