package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/hexfield/internal/config"
)

func TestFileConfigFromLogging(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
		want FileConfig
	}{
		{
			name: "unset knobs use defaults",
			cfg:  config.LoggingConfig{LogFile: "hexfield.log", Compress: true},
			want: DefaultFileConfig("hexfield.log"),
		},
		{
			name: "explicit knobs win",
			cfg:  config.LoggingConfig{LogFile: "viewer.log", MaxSizeMB: 5, MaxBackups: 9, MaxAgeDays: 30},
			want: FileConfig{Path: "viewer.log", MaxSizeMB: 5, MaxBackups: 9, MaxAgeDays: 30},
		},
		{
			name: "negative knobs use defaults",
			cfg:  config.LoggingConfig{LogFile: "x.log", MaxSizeMB: -1, MaxBackups: -1, MaxAgeDays: -1},
			want: FileConfig{Path: "x.log", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fileConfig(tt.cfg); got != tt.want {
				t.Errorf("fileConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// readLog initializes a file-only logger at level, runs fn and returns the
// file contents.
func readLog(t *testing.T, level string, fn func()) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexfield.log")
	if err := InitWithFileConfig(level, DefaultFileConfig(path), false); err != nil {
		t.Fatalf("InitWithFileConfig: %v", err)
	}
	fn()
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestNamedComponents(t *testing.T) {
	out := readLog(t, "info", func() {
		Named("hub").Info("viewer connected")
		Named("game").Named("scene").Info("field rebuilt")
		Info("hexfield started")
	})

	tests := []struct{ name, msg string }{
		{"hub", "viewer connected"},
		{"game.scene", "field rebuilt"},
	}
	for _, tt := range tests {
		if line := lineWith(out, tt.msg); !strings.Contains(line, " "+tt.name+" ") {
			t.Errorf("entry %q not tagged %q: %q", tt.msg, tt.name, line)
		}
	}
	if lineWith(out, "hexfield started") == "" {
		t.Errorf("root entry missing:\n%s", out)
	}
}

func lineWith(out, msg string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, msg) {
			return line
		}
	}
	return ""
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		present []string
		absent  []string
	}{
		{level: "debug", present: []string{"tile hovered", "frame uploaded", "snapshot incomplete"}},
		{level: "", present: []string{"frame uploaded", "snapshot incomplete"}, absent: []string{"tile hovered"}},
		{level: "error", present: []string{"snapshot incomplete"}, absent: []string{"tile hovered", "frame uploaded"}},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			out := readLog(t, tt.level, func() {
				Named("game").Debug("tile hovered")
				Info("frame uploaded")
				Error("snapshot incomplete")
			})
			for _, s := range tt.present {
				if !strings.Contains(out, s) {
					t.Errorf("log missing %q", s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("log has %q below level %q", s, tt.level)
				}
			}
		})
	}
}

func TestInitFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexfield.log")
	cfg := config.Default().Logging
	cfg.Level = "warn"
	cfg.LogFile = path

	if err := Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("hidden")
	Error("shown")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("warn level not applied:\n%s", data)
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init(config.LoggingConfig{Level: "chatty"}); err == nil {
		t.Error("Init accepted level \"chatty\"")
	}
}

func TestNamedBeforeInit(t *testing.T) {
	saved := Log
	Log = nil
	defer func() { Log = saved }()

	l := Named("hub")
	if l == nil {
		t.Fatal("Named returned nil")
	}
	l.Info("dropped")
}
