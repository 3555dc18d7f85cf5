package cli

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Info("solved tree", "nodes", 7)

	line := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(line) {
		t.Errorf("missing HH:MM:SS.ms timestamp: %q", line)
	}
	if !strings.Contains(line, "nodes=7") {
		t.Errorf("missing key/value pair: %q", line)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
		{"info at warn level", log.WarnLevel, func(l *log.Logger) { l.Info("test") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Solved 12 nodes")

	if !regexp.MustCompile(`Solved 12 nodes \(\d+(\.\d+)?m?s\)`).MatchString(buf.String()) {
		t.Errorf("unexpected progress line: %q", buf.String())
	}
}

// runWithLogs executes the CLI and returns what it logged.
func runWithLogs(t *testing.T, args ...string) string {
	t.Helper()
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return logs.String()
}

func TestVerbosityFlags(t *testing.T) {
	isolate(t)
	path := generateTree(t, t.TempDir(), "star.json", "star", 6)

	tests := []struct {
		name      string
		args      []string
		wantDebug bool
		wantMerge bool
	}{
		{"default", []string{"maxwhite", "--no-cache", path}, false, false},
		{"verbose", []string{"-v", "maxwhite", "--no-cache", path}, true, false},
		{"trace merges", []string{"--trace-merges", "maxwhite", "--no-cache", path}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := runWithLogs(t, tt.args...)
			if got := strings.Contains(logs, "config loaded"); got != tt.wantDebug {
				t.Errorf("debug output = %v, want %v:\n%s", got, tt.wantDebug, logs)
			}
			if got := strings.Contains(logs, "merge"); got != tt.wantMerge {
				t.Errorf("merge trace = %v, want %v:\n%s", got, tt.wantMerge, logs)
			}
		})
	}
}
