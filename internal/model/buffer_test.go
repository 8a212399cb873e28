package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewByteBuffer(t *testing.T) {
	t.Parallel()

	t.Run("copies input", func(t *testing.T) {
		t.Parallel()

		data := []byte("abc")
		bb := NewByteBuffer(data)
		data[0] = 'z'

		if bb.At(0) != 'a' {
			t.Errorf("buffer observed caller modification: got %q", bb.At(0))
		}
	})

	t.Run("zero value is empty", func(t *testing.T) {
		t.Parallel()

		var bb ByteBuffer
		if bb.Len() != 0 {
			t.Errorf("expected empty buffer, got %d bytes", bb.Len())
		}
		if len(bb.Bytes()) != 0 {
			t.Error("expected no bytes")
		}
	})
}

func TestByteBufferBytesReturnsCopy(t *testing.T) {
	t.Parallel()

	bb := NewByteBuffer([]byte{1, 2, 3})
	b := bb.Bytes()
	b[0] = 0xff

	if bb.At(0) != 1 {
		t.Errorf("modifying Bytes() result changed the buffer: got %#x", bb.At(0))
	}
}

func TestByteBufferWindow(t *testing.T) {
	t.Parallel()

	bb := NewByteBuffer([]byte("0123456789"))

	tests := []struct {
		name     string
		offset   int64
		length   int64
		want     string
		wantBase int64
		wantErr  bool
	}{
		{name: "whole buffer", offset: 0, length: -1, want: "0123456789"},
		{name: "middle", offset: 2, length: 3, want: "234", wantBase: 2},
		{name: "length past end", offset: 8, length: 100, want: "89", wantBase: 8},
		{name: "maximum length", offset: 1, length: math.MaxInt64, want: "123456789", wantBase: 1},
		{name: "offset at end", offset: 10, length: -1, want: "", wantBase: 10},
		{name: "zero length", offset: 4, length: 0, want: "", wantBase: 4},
		{name: "offset past end", offset: 11, length: -1, wantErr: true},
		{name: "negative offset", offset: -1, length: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, err := bb.Window(tt.offset, tt.length)
			if tt.wantErr {
				if !errors.Is(err, ErrWindowOutOfRange) {
					t.Fatalf("expected ErrWindowOutOfRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := string(w.Bytes()); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if w.BaseOffset() != tt.wantBase {
				t.Errorf("base offset: got %d, want %d", w.BaseOffset(), tt.wantBase)
			}
		})
	}

	t.Run("nested windows accumulate base offset", func(t *testing.T) {
		t.Parallel()

		outer, err := bb.Window(2, -1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		inner, err := outer.Window(3, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(inner.Bytes()) != "56" {
			t.Errorf("got %q", inner.Bytes())
		}
		if inner.BaseOffset() != 5 {
			t.Errorf("expected base 5, got %d", inner.BaseOffset())
		}
	})
}

func TestByteBufferStats(t *testing.T) {
	t.Parallel()

	bb := NewByteBuffer([]byte{0x00, 0x00, 'A', ' ', '~', 0x01, 0x7f, 0x80, 0xff})
	s := bb.Stats()

	want := ByteStats{Null: 2, Printable: 3, Control: 2, High: 2}
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
	if s.Total() != bb.Len() {
		t.Errorf("total %d does not match length %d", s.Total(), bb.Len())
	}
}
