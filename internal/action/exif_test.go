package action

import (
	"errors"
	"strings"
	"testing"
)

func TestEXIFProcess(t *testing.T) {
	t.Parallel()

	t.Run("data without EXIF", func(t *testing.T) {
		t.Parallel()

		for _, data := range [][]byte{nil, []byte("plain text without any image header")} {
			out, err := NewEXIF().Process(nil, data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, "No EXIF data found") {
				t.Errorf("expected no-EXIF note, got:\n%s", out)
			}
		}
	})

	t.Run("invalid max value length", func(t *testing.T) {
		t.Parallel()

		if _, err := NewEXIF().Process(Config{OptMaxValueLength: 0}, nil); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("expected ErrInvalidOption, got %v", err)
		}
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "short", n: 10, want: "short"},
		{in: "exactly", n: 7, want: "exactly"},
		{in: "much too long", n: 8, want: "much ..."},
		{in: "abcdef", n: 2, want: "ab"},
		{in: "日本語テキスト", n: 5, want: "日本..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
