package controller

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeHashes(t *testing.T) {
	t.Parallel()

	t.Run("known digests of abc", func(t *testing.T) {
		t.Parallel()

		got, err := ComputeHashes(HashNames(), []byte("abc"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := map[string]string{
			HashMD5:     "900150983cd24fb0d6963f7d28e17f72",
			HashSHA1:    "a9993e364706816aba3e25717850c26c9cd0d89d",
			HashSHA256:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
			HashSHA3256: "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532",
			HashSHA512: "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
				"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d hashes, got %d", len(want), len(got))
		}
		for _, h := range got {
			if h.Value != want[h.Algorithm] {
				t.Errorf("%s = %s, want %s", h.Algorithm, h.Value, want[h.Algorithm])
			}
		}
	})

	t.Run("keeps configured order", func(t *testing.T) {
		t.Parallel()

		got, err := ComputeHashes([]string{"SHA256", "md5"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].Algorithm != HashSHA256 || got[1].Algorithm != HashMD5 {
			t.Errorf("unexpected order: %v", got)
		}
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		t.Parallel()

		if _, err := ComputeHashes([]string{"crc32"}, nil); !errors.Is(err, ErrUnknownHash) {
			t.Errorf("expected ErrUnknownHash, got %v", err)
		}
	})
}

func TestNormalizeHashes(t *testing.T) {
	t.Parallel()

	got, err := NormalizeHashes([]string{" MD5", "sha1", "md5", "SHA3-256"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"md5", "sha1", "sha3-256"}, got); diff != "" {
		t.Errorf("NormalizeHashes() mismatch (-want +got):\n%s", diff)
	}
}
