package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/byteprobe/internal/action"
	"github.com/nao1215/byteprobe/internal/controller"
	"github.com/nao1215/byteprobe/internal/report"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if cfg.Length != DefaultLength {
		t.Errorf("Length = %d, want %d", cfg.Length, DefaultLength)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.DBDir != XDGDataDir() {
		t.Errorf("DBDir = %q, want %q", cfg.DBDir, XDGDataDir())
	}
	if filepath.Base(XDGConfigDir()) != AppName {
		t.Errorf("XDGConfigDir() = %q", XDGConfigDir())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:    "no input",
			modify:  func(c *Config) { c.Inputs = nil },
			wantErr: ErrNoInput,
		},
		{
			name:    "stdin twice",
			modify:  func(c *Config) { c.Inputs = []string{"-", "a.bin", "-"} },
			wantErr: ErrDuplicateStdin,
		},
		{
			name:    "zero batch size",
			modify:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name: "json and markdown",
			modify: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "negative offset",
			modify:  func(c *Config) { c.Offset = -1 },
			wantErr: ErrInvalidOffset,
		},
		{
			name:    "length below -1",
			modify:  func(c *Config) { c.Length = -2 },
			wantErr: ErrInvalidLength,
		},
		{
			name:    "malformed override",
			modify:  func(c *Config) { c.Overrides = []string{"hexdump"} },
			wantErr: ErrInvalidOverride,
		},
		{
			name:    "unknown hash",
			modify:  func(c *Config) { c.Hashes = []string{"whirlpool"} },
			wantErr: controller.ErrUnknownHash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			cfg.Inputs = []string{"sample.bin"}
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReportFormat(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if got := cfg.ReportFormat(); got != report.FormatText {
		t.Errorf("default format = %q", got)
	}
	cfg.JSONReport = true
	if got := cfg.ReportFormat(); got != report.FormatJSON {
		t.Errorf("json format = %q", got)
	}
	cfg.JSONReport = false
	cfg.MarkdownReport = true
	if got := cfg.ReportFormat(); got != report.FormatMarkdown {
		t.Errorf("markdown format = %q", got)
	}
}

func TestHashNames(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if diff := cmp.Diff(controller.DefaultHashes(), cfg.HashNames()); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	cfg.File = &File{Hashes: []string{"sha512"}}
	if diff := cmp.Diff([]string{"sha512"}, cfg.HashNames()); diff != "" {
		t.Errorf("file hashes mismatch (-want +got):\n%s", diff)
	}

	cfg.Hashes = []string{"md5"}
	if diff := cmp.Diff([]string{"md5"}, cfg.HashNames()); diff != "" {
		t.Errorf("flag hashes mismatch (-want +got):\n%s", diff)
	}
}

func TestInvocations(t *testing.T) {
	t.Parallel()

	t.Run("defaults to hexdump", func(t *testing.T) {
		t.Parallel()

		invs, err := NewConfig().Invocations()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(invs) != 1 || invs[0].Action.Kind() != action.KindHexdump {
			t.Errorf("unexpected invocations: %+v", invs)
		}
	})

	t.Run("file actions keep order and options", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.File = &File{Actions: []ActionSpec{
			{Name: "timestamp", Options: map[string]any{"format": "unix32"}},
			{Name: "hexdump"},
			{Name: "timestamp"},
		}}
		cfg.Overrides = []string{"timestamp.timezone=UTC", "hexdump.uppercase=false"}

		invs, err := cfg.Invocations()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var kinds []action.Kind
		for _, inv := range invs {
			kinds = append(kinds, inv.Action.Kind())
		}
		if diff := cmp.Diff([]action.Kind{action.KindTimestamp, action.KindHexdump, action.KindTimestamp}, kinds); diff != "" {
			t.Errorf("kinds mismatch (-want +got):\n%s", diff)
		}

		first, err := invs[0].Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.String(action.OptFormat) != "unix32" || first.String(action.OptTimezone) != "UTC" {
			t.Errorf("unexpected first config: %v", first)
		}
		third, err := invs[2].Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if third.String(action.OptFormat) != "win32" {
			t.Errorf("options leaked between invocations: %v", third)
		}
		second, err := invs[1].Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.Bool(action.OptUppercase) {
			t.Error("expected --set override to apply")
		}
		if cfg.File.Actions[1].Options != nil {
			t.Error("file options were modified")
		}
	})

	t.Run("flag actions win over file", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Actions = []string{"strings", "GUID"}
		cfg.File = &File{Actions: []ActionSpec{{Name: "hexdump"}}}

		invs, err := cfg.Invocations()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(invs) != 2 || invs[1].Action.Kind() != action.KindGUID {
			t.Errorf("unexpected invocations: %+v", invs)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Actions = []string{"disasm"}
		if _, err := cfg.Invocations(); !errors.Is(err, action.ErrUnknownAction) {
			t.Errorf("expected ErrUnknownAction, got %v", err)
		}
	})

	t.Run("invalid option value fails early", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Overrides = []string{"hexdump.startOffset=lots"}
		if _, err := cfg.Invocations(); !errors.Is(err, action.ErrInvalidOption) {
			t.Errorf("expected ErrInvalidOption, got %v", err)
		}
	})
}

func TestParseOverride(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in         string
		wantKind   action.Kind
		wantOption string
		wantValue  string
		wantErr    bool
	}{
		{in: "hexdump.uppercase=false", wantKind: action.KindHexdump, wantOption: "uppercase", wantValue: "false"},
		{in: "Timestamp.timezone=Europe/Berlin", wantKind: action.KindTimestamp, wantOption: "timezone", wantValue: "Europe/Berlin"},
		{in: "hexdump.nonAsciiPlaceholder==", wantKind: action.KindHexdump, wantOption: "nonAsciiPlaceholder", wantValue: "="},
		{in: "hexdump.uppercase", wantErr: true},
		{in: "hexdump=1", wantErr: true},
		{in: "hexdump.=1", wantErr: true},
		{in: "bogus.opt=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			kind, option, value, err := ParseOverride(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOverride) {
					t.Errorf("expected ErrInvalidOverride, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tt.wantKind || option != tt.wantOption || value != tt.wantValue {
				t.Errorf("got (%q, %q, %q)", kind, option, value)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads hashes and ordered actions", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `hashes: [md5, sha3-256]
actions:
  - name: hexdump
    options:
      uppercase: false
      startOffset: 16
  - name: timestamp
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := &File{
			Hashes: []string{"md5", "sha3-256"},
			Actions: []ActionSpec{
				{Name: "hexdump", Options: map[string]any{"uppercase": false, "startOffset": 16}},
				{Name: "timestamp"},
			},
		}
		if diff := cmp.Diff(want, cf); diff != "" {
			t.Errorf("LoadConfigFile() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("actions: [unclosed"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if got := FindConfigFile(path); got != path {
		t.Errorf("FindConfigFile(%q) = %q", path, got)
	}
	if got := FindConfigFile(path + ".missing"); got != "" {
		t.Errorf("expected empty result for missing explicit path, got %q", got)
	}
}
