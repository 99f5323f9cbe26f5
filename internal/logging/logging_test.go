package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(verbose, debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Logger{Verbose: verbose, Debug: debug, Out: &out, Err: &errOut}, &out, &errOut
}

func TestLogger_QuietByDefault(t *testing.T) {
	color.NoColor = true
	l, out, errOut := newTestLogger(false, false)

	l.Infof("info %d", 1)
	l.Debugf("debug %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	if out.Len() != 0 || errOut.Len() != 0 {
		t.Errorf("Expected no output, got stdout=%q stderr=%q", out.String(), errOut.String())
	}
}

func TestLogger_VerboseShowsInfoNotDebug(t *testing.T) {
	color.NoColor = true
	l, out, errOut := newTestLogger(true, false)

	l.Infof("loaded %d tasks", 3)
	l.Debugf("hidden")
	l.Warnf("careful")

	if !strings.Contains(out.String(), "[info] loaded 3 tasks") {
		t.Errorf("Expected info line, got %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Errorf("Debug output should be hidden in verbose mode: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[warn] careful") {
		t.Errorf("Expected warn line on stderr, got %q", errOut.String())
	}
}

func TestLogger_DebugShowsEverything(t *testing.T) {
	color.NoColor = true
	l, out, _ := newTestLogger(false, true)

	l.Infof("info")
	l.Debugf("debug")

	if !strings.Contains(out.String(), "[info] info") || !strings.Contains(out.String(), "[debug] debug") {
		t.Errorf("Expected info and debug lines, got %q", out.String())
	}
}

func TestLogger_WarnfAlways(t *testing.T) {
	color.NoColor = true
	l, _, errOut := newTestLogger(false, false)

	l.WarnfAlways("key file has mode %o", 0o644)

	if !strings.Contains(errOut.String(), "Warning: key file has mode 644") {
		t.Errorf("Expected warning, got %q", errOut.String())
	}
}

func TestLogger_ErrorfAndReturnWraps(t *testing.T) {
	color.NoColor = true
	sentinel := errors.New("boom")
	l, _, errOut := newTestLogger(true, false)

	err := l.ErrorfAndReturn("saving tasks: %w", sentinel)

	if !errors.Is(err, sentinel) {
		t.Errorf("Expected returned error to wrap sentinel, got %v", err)
	}
	if !strings.Contains(errOut.String(), "[error] saving tasks: boom") {
		t.Errorf("Expected error line, got %q", errOut.String())
	}
}
