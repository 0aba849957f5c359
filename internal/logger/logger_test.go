package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePath(t *testing.T) {
	t.Run("configured dir and filename", func(t *testing.T) {
		tmpDir := t.TempDir()
		got, err := resolveLogFilePath(Options{Dir: tmpDir, Filename: "api.log"})
		if err != nil {
			t.Fatalf("resolve log path failed: %v", err)
		}
		if got != filepath.Join(tmpDir, "api.log") {
			t.Fatalf("unexpected log path: %s", got)
		}
		if _, err := os.Stat(got); err != nil {
			t.Fatalf("expected log file to be created: %v", err)
		}
	})

	t.Run("defaults relative to workdir", func(t *testing.T) {
		tmpDir := t.TempDir()
		oldWD, err := os.Getwd()
		if err != nil {
			t.Fatalf("get wd failed: %v", err)
		}
		t.Cleanup(func() { _ = os.Chdir(oldWD) })
		if err := os.Chdir(tmpDir); err != nil {
			t.Fatalf("chdir failed: %v", err)
		}

		got, err := resolveLogFilePath(Options{})
		if err != nil {
			t.Fatalf("resolve default log path failed: %v", err)
		}
		if filepath.Base(filepath.Dir(got)) != defaultLogDirName {
			t.Fatalf("unexpected log dir: %s", filepath.Dir(got))
		}
		if filepath.Base(got) != defaultLogFilename {
			t.Fatalf("unexpected log filename: %s", filepath.Base(got))
		}
	})
}

func TestNewByMode(t *testing.T) {
	tmpDir := t.TempDir()

	releaseLog := New("release", Options{Dir: tmpDir, Filename: "release.log"})
	releaseLog.Info("release-log-test")
	_ = releaseLog.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	if !strings.Contains(string(content), "release-log-test") {
		t.Fatalf("expected release log to contain message, got=%s", string(content))
	}

	debugLog := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	debugLog.Info("debug-log-test")
	_ = debugLog.Sync()

	// debug 模式只写控制台
	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestPositiveOr(t *testing.T) {
	if got := positiveOr(0, 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	if got := positiveOr(-1, 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	if got := positiveOr(3, 7); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}
