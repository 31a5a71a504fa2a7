package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pickfire/bugs/internal/control"
)

func TestResolveMode(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	custom := filepath.Join(t.TempDir(), "bugs.yaml")
	if err := os.WriteFile(custom, []byte("mode: autonomous\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		mode    string
		config  string
		want    control.Mode
		wantErr bool
	}{
		{"default config", "", "", control.ModeManual, false},
		{"flag wins", "bot", custom, control.ModeAutonomous, false},
		{"from config", "", custom, control.ModeAutonomous, false},
		{"bad flag", "sideways", "", "", true},
		{"missing config", "", filepath.Join(t.TempDir(), "nope.yaml"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagMode, flagConfig = tt.mode, tt.config
			t.Cleanup(func() { flagMode, flagConfig = "", "" })

			got, err := resolveMode()
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveMode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveMode() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := expandHome("~/.bugs/bugs.log"); got != filepath.Join(home, ".bugs", "bugs.log") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/var/log/bugs.log"); got != "/var/log/bugs.log" {
		t.Errorf("absolute paths should be kept, got %q", got)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	flagLogLevel = "verbose"
	t.Cleanup(func() { flagLogLevel = "info" })
	if _, err := newLogger(os.Stderr, "test"); err == nil {
		t.Error("expected error for unknown level")
	}

	flagLogLevel = "debug"
	l, err := newLogger(os.Stderr, "test")
	if err != nil {
		t.Fatal(err)
	}
	if l.GetLevel().String() != "debug" {
		t.Errorf("level = %v", l.GetLevel())
	}
}
