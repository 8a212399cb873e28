package convert

import (
	"encoding/binary"
	"errors"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"
)

func TestHexToDec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    uint64
		wantErr error
	}{
		{name: "bytes of AB", input: "4142", want: 16706},
		{name: "single digit", input: "f", want: 15},
		{name: "upper case", input: "FF", want: 255},
		{name: "leading zeros", input: "000010", want: 16},
		{name: "max uint64", input: "ffffffffffffffff", want: math.MaxUint64},
		{name: "empty", input: "", wantErr: ErrInvalidHex},
		{name: "0x prefix", input: "0x41", wantErr: ErrInvalidHex},
		{name: "non hex digit", input: "41g2", wantErr: ErrInvalidHex},
		{name: "embedded space", input: "41 42", wantErr: ErrInvalidHex},
		{name: "negative", input: "-1", wantErr: ErrInvalidHex},
		{name: "overflow", input: "10000000000000000", wantErr: ErrHexOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := HexToDec(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("HexToDec(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// TestHexToDecRoundTrip checks that formatting a number as hex and parsing it
// back yields the same number.
func TestHexToDecRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	values := []uint64{0, 1, 15, 16, 255, 256, math.MaxUint32, math.MaxUint64}
	for range 200 {
		values = append(values, rng.Uint64())
	}

	for _, n := range values {
		got, err := HexToDec(strconv.FormatUint(n, 16))
		if err != nil {
			t.Fatalf("HexToDec(%x): unexpected error: %v", n, err)
		}
		if got != n {
			t.Fatalf("round trip of %d returned %d", n, got)
		}
	}
}

func TestToLittleEndian(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "space separated", input: "41 42 43", want: "43 42 41"},
		{name: "compact", input: "414243", want: "43 42 41"},
		{name: "keeps case", input: "aB Cd", want: "Cd aB"},
		{name: "irregular whitespace", input: " 01\t02  03\n", want: "03 02 01"},
		{name: "single byte", input: "ff", want: "ff"},
		{name: "empty", input: "", want: ""},
		{name: "odd length", input: "41 4", wantErr: ErrOddHexLength},
		{name: "non hex", input: "41 zz", wantErr: ErrInvalidHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ToLittleEndian(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToLittleEndian(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestToLittleEndianInvolution checks that reversing twice is the identity
// for canonical space separated input.
func TestToLittleEndianInvolution(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 4))
	for range 200 {
		b := make([]byte, rng.IntN(32))
		for i := range b {
			b[i] = byte(rng.UintN(256))
		}
		s := EncodeHex(b, rng.IntN(2) == 0)

		once, err := ToLittleEndian(s)
		if err != nil {
			t.Fatalf("ToLittleEndian(%q): %v", s, err)
		}
		twice, err := ToLittleEndian(once)
		if err != nil {
			t.Fatalf("ToLittleEndian(%q): %v", once, err)
		}
		if twice != s {
			t.Fatalf("double reversal of %q returned %q", s, twice)
		}
	}
}

func TestDecodeHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr error
	}{
		{name: "compact", input: "4142ff", want: []byte{0x41, 0x42, 0xff}},
		{name: "spaced", input: "41 42\tFF", want: []byte{0x41, 0x42, 0xff}},
		{name: "empty", input: "", want: []byte{}},
		{name: "odd", input: "414", wantErr: ErrOddHexLength},
		{name: "invalid", input: "4g", wantErr: ErrInvalidHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeHex(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != string(tt.want) {
				t.Errorf("got %x, want %x", got, tt.want)
			}
		})
	}
}

func TestEncodeHex(t *testing.T) {
	t.Parallel()

	t.Run("lower case", func(t *testing.T) {
		t.Parallel()
		if got := EncodeHex([]byte{0x0a, 0xff}, false); got != "0a ff" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("upper case", func(t *testing.T) {
		t.Parallel()
		if got := EncodeHex([]byte{0x0a, 0xff}, true); got != "0A FF" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		if got := EncodeHex(nil, true); got != "" {
			t.Errorf("got %q", got)
		}
	})
}

func TestReverse(t *testing.T) {
	t.Parallel()

	in := []byte{1, 2, 3, 4}
	out := Reverse(in)

	if string(out) != string([]byte{4, 3, 2, 1}) {
		t.Errorf("unexpected result %v", out)
	}
	if string(in) != string([]byte{1, 2, 3, 4}) {
		t.Errorf("input was modified: %v", in)
	}
}

func TestParseByteOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    binary.ByteOrder
		wantErr bool
	}{
		{input: "little", want: binary.LittleEndian},
		{input: "BIG", want: binary.BigEndian},
		{input: " Little ", want: binary.LittleEndian},
		{input: "middle", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseByteOrder(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidByteOrder) {
					t.Fatalf("expected ErrInvalidByteOrder, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUint(t *testing.T) {
	t.Parallel()

	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	tests := []struct {
		name  string
		width int
		order binary.ByteOrder
		want  uint64
	}{
		{name: "u8", width: 1, order: binary.LittleEndian, want: 0x01},
		{name: "u16 little", width: 2, order: binary.LittleEndian, want: 0x0201},
		{name: "u16 big", width: 2, order: binary.BigEndian, want: 0x0102},
		{name: "u32 little", width: 4, order: binary.LittleEndian, want: 0x04030201},
		{name: "u64 big", width: 8, order: binary.BigEndian, want: 0x0102030405060708},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Uint(data[:tt.width], tt.order)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#x, want %#x", got, tt.want)
			}
		})
	}

	t.Run("invalid width", func(t *testing.T) {
		t.Parallel()
		if _, err := Uint(data[:3], binary.LittleEndian); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("expected ErrInvalidWidth, got %v", err)
		}
	})
}

func FuzzToLittleEndian(f *testing.F) {
	f.Add("41 42 43")
	f.Add("0102")
	f.Add("")
	f.Add("zz")

	f.Fuzz(func(t *testing.T, s string) {
		once, err := ToLittleEndian(s)
		if err != nil {
			return
		}
		twice, err := ToLittleEndian(once)
		if err != nil {
			t.Fatalf("second reversal of %q failed: %v", once, err)
		}
		again, err := ToLittleEndian(twice)
		if err != nil {
			t.Fatalf("third reversal of %q failed: %v", twice, err)
		}
		if again != once {
			t.Fatalf("reversal is not an involution on canonical form: %q vs %q", once, again)
		}
		if strings.Contains(once, "  ") {
			t.Fatalf("output %q contains double spaces", once)
		}
	})
}
