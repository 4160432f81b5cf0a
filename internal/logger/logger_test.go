package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		Setup(0, false)
	})
	return &buf
}

func TestDefaultLevelHidesDebug(t *testing.T) {
	buf := capture(t)
	Setup(0, false)

	log := Get()
	log.Debug("hidden detail")
	log.Info("visible message", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Error("debug line logged at default verbosity")
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "value") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	buf := capture(t)
	Setup(1, false)

	Get().Debug("wire detail")
	if !strings.Contains(buf.String(), "wire detail") {
		t.Errorf("debug line missing under -v: %q", buf.String())
	}
}

func TestQuietSuppressesInfoAndWarn(t *testing.T) {
	buf := capture(t)
	Setup(0, true)

	log := Get()
	log.Info("progress")
	log.Warn("heads up")
	log.Error("it broke")

	out := buf.String()
	if strings.Contains(out, "progress") || strings.Contains(out, "heads up") {
		t.Errorf("quiet mode leaked info/warn lines: %q", out)
	}
	if !strings.Contains(out, "it broke") {
		t.Errorf("error line suppressed under quiet: %q", out)
	}
}

func TestLinePrefix(t *testing.T) {
	buf := capture(t)
	Setup(0, false)

	Get().Info("message")
	if !strings.Contains(buf.String(), "[gcphcp]") {
		t.Errorf("line missing component tag: %q", buf.String())
	}
}
