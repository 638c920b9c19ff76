package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

func TestLogger_EnabledAndSetWriter(t *testing.T) {
	var l Logger
	if l.Enabled() {
		t.Fatalf("expected disabled when Writer is nil")
	}

	var buf bytes.Buffer
	l.SetWriter(&buf)
	if !l.Enabled() {
		t.Fatalf("expected enabled after setting Writer")
	}
}

func TestLogger_Logf_WritesPrefixRequestAndMessage(t *testing.T) {
	ui.Init(true) // disable ANSI color for stable assertions
	t.Cleanup(func() { ui.Init(false) })

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", PrefixColor: ui.FgGreen}
	l.Logf("  req-1  ", "msg %d", 1)

	out := buf.String()
	if !strings.HasPrefix(out, "X: ") {
		t.Fatalf("expected uncoloured prefix, got %q", out)
	}
	if !strings.Contains(out, "request=req-1") {
		t.Fatalf("expected trimmed request id, got %q", out)
	}
	if !strings.Contains(out, "msg 1") {
		t.Fatalf("expected formatted message, got %q", out)
	}
}

func TestLogger_Logf_ColouredPrefix(t *testing.T) {
	ui.Init(false)

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", PrefixColor: ui.FgGreen}
	l.Logf("r", "x")

	if !strings.HasPrefix(buf.String(), ui.FgGreen+"X:"+ui.Reset) {
		t.Fatalf("expected ANSI coloured prefix, got %q", buf.String())
	}
}

func TestLogger_Logf_EmptyRequestID_UsesDash(t *testing.T) {
	ui.Init(true)
	t.Cleanup(func() { ui.Init(false) })

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:"}
	l.Logf("   ", "x")

	if out := buf.String(); !strings.Contains(out, "request=- ") {
		t.Fatalf("expected placeholder request id, got %q", out)
	}
}

func TestLogger_Logf_DefaultPrefix(t *testing.T) {
	ui.Init(true)
	t.Cleanup(func() { ui.Init(false) })

	var buf bytes.Buffer
	l := Logger{Writer: &buf}
	l.Logf("r", "x")

	if out := buf.String(); !strings.Contains(out, "Log:") {
		t.Fatalf("expected default prefix, got %q", out)
	}
}

func TestLogger_Logf_OmitField(t *testing.T) {
	ui.Init(true)
	t.Cleanup(func() { ui.Init(false) })

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", OmitRequest: true}
	l.Logf("r", "x")

	if out := buf.String(); out != "X: x\n" {
		t.Fatalf("output = %q, want %q", out, "X: x\\n")
	}
}

func TestLogger_Logf_NilReceiver_NoPanic(t *testing.T) {
	var l *Logger
	l.Logf("r", "x")
}
