package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leandrodaf/chordie/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewFromZap(zap.New(core)), logs
}

func TestZapLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level contracts.LogLevel
		want  []string
	}{
		{"info hides debug", contracts.InfoLevel, []string{"info", "warn", "error"}},
		{"debug shows all", contracts.DebugLevel, []string{"debug", "info", "warn", "error"}},
		{"warn hides info", contracts.WarnLevel, []string{"warn", "error"}},
		{"error only", contracts.ErrorLevel, []string{"error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, logs := newObserved()
			l.SetLevel(tt.level)

			l.Debug("debug")
			l.Info("info")
			l.Warn("warn")
			l.Error("error")

			var got []string
			for _, e := range logs.All() {
				got = append(got, e.Message)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZapLoggerFields(t *testing.T) {
	l, logs := newObserved()

	l.Info("MIDI device selected",
		l.Field().Int("portIndex", 2),
		l.Field().String("portName", "Keystation"),
		l.Field().Uint8("key", 60),
		l.Field().Ints("held", []int{60, 64}),
		l.Field().Error("error", errors.New("boom")),
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["portIndex"] != int64(2) {
		t.Errorf("portIndex = %v", ctx["portIndex"])
	}
	if ctx["portName"] != "Keystation" {
		t.Errorf("portName = %v", ctx["portName"])
	}
	if ctx["key"] != uint8(60) {
		t.Errorf("key = %v", ctx["key"])
	}
	if ctx["error"] != "boom" {
		t.Errorf("error = %v", ctx["error"])
	}
	if _, ok := ctx["held"]; !ok {
		t.Error("held field missing")
	}
}

func TestZapLoggerIgnoresForeignFields(t *testing.T) {
	l, logs := newObserved()

	l.Info("message", nil, zapField{})

	if got := len(logs.All()[0].Context); got != 0 {
		t.Errorf("expected no context fields, got %d", got)
	}
}

func TestZapLoggerFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chordie.log")

	l := NewStandardLogger().(*ZapLogger)
	l.SetDestination(contracts.FileLog, path)
	l.Info("written to file", l.Field().Int("port", 1))
	if err := l.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing message: %q", data)
	}

	l.SetDestination(contracts.ConsoleLog)
}

func TestZapLoggerFileDestinationWithoutPath(t *testing.T) {
	l, logs := newObserved()

	l.SetDestination(contracts.FileLog)

	if logs.FilterMessageSnippet("without a path").Len() != 1 {
		t.Error("expected a warning about the missing path")
	}
}

func TestZapLoggerConsoleDestinationRestoresOriginalSink(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "chordie.log")

	l := newZapLogger(zap.NewProductionEncoderConfig(), true, zapcore.AddSync(&console))
	l.Info("before file")
	l.SetDestination(contracts.FileLog, path)
	l.Info("in file")
	l.SetDestination(contracts.ConsoleLog)
	l.Info("after file")
	if err := l.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	out := console.String()
	for _, msg := range []string{"before file", "after file"} {
		if !strings.Contains(out, msg) {
			t.Errorf("console missing %q: %q", msg, out)
		}
	}
	if strings.Contains(out, "in file") {
		t.Errorf("console got file-only entry: %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "after file") {
		t.Errorf("file got entry written after switching back: %q", data)
	}
}

func TestZapLoggerEnabled(t *testing.T) {
	tests := []struct {
		name  string
		set   contracts.LogLevel
		check contracts.LogLevel
		want  bool
	}{
		{"debug at info", contracts.InfoLevel, contracts.DebugLevel, false},
		{"info at info", contracts.InfoLevel, contracts.InfoLevel, true},
		{"debug at debug", contracts.DebugLevel, contracts.DebugLevel, true},
		{"info at error", contracts.ErrorLevel, contracts.InfoLevel, false},
		{"error at warn", contracts.WarnLevel, contracts.ErrorLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newObserved()
			l.SetLevel(tt.set)
			if got := l.Enabled(tt.check); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.check, got, tt.want)
			}
		})
	}
}

func TestZapLoggerEnabledHonorsWrappedCore(t *testing.T) {
	core, _ := observer.New(zapcore.WarnLevel)
	l := NewFromZap(zap.New(core))
	l.SetLevel(contracts.DebugLevel)

	if l.Enabled(contracts.InfoLevel) {
		t.Error("info should be disabled by the wrapped core")
	}
	if !l.Enabled(contracts.ErrorLevel) {
		t.Error("error should be enabled")
	}
}
