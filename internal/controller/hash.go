package controller

import (
	"crypto/md5"  //nolint:gosec // MD5 is reported for identification, not security
	"crypto/sha1" //nolint:gosec // SHA-1 is reported for identification, not security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"maps"
	"slices"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/byteprobe/internal/model"
)

// Hash algorithm names.
const (
	HashMD5     = "md5"
	HashSHA1    = "sha1"
	HashSHA256  = "sha256"
	HashSHA512  = "sha512"
	HashSHA3256 = "sha3-256"
)

var hashFactories = map[string]func() hash.Hash{
	HashMD5:     md5.New,
	HashSHA1:    sha1.New,
	HashSHA256:  sha256.New,
	HashSHA512:  sha512.New,
	HashSHA3256: func() hash.Hash { return sha3.New256() },
}

// DefaultHashes returns the algorithms printed in the header by default.
func DefaultHashes() []string {
	return []string{HashMD5, HashSHA1, HashSHA256, HashSHA3256}
}

// HashNames returns every supported algorithm in sorted order.
func HashNames() []string {
	return slices.Sorted(maps.Keys(hashFactories))
}

// NormalizeHashes lower-cases names, drops duplicates and checks that every
// algorithm is supported. Order is preserved.
func NormalizeHashes(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := strings.ToLower(strings.TrimSpace(name))
		if _, ok := hashFactories[n]; !ok {
			return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownHash, name, strings.Join(HashNames(), ", "))
		}
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// ComputeHashes digests data with each named algorithm in a single pass.
func ComputeHashes(names []string, data []byte) ([]model.Hash, error) {
	names, err := NormalizeHashes(names)
	if err != nil {
		return nil, err
	}

	hashers := make([]hash.Hash, len(names))
	writers := make([]io.Writer, len(names))
	for i, name := range names {
		hashers[i] = hashFactories[name]()
		writers[i] = hashers[i]
	}
	if _, err := io.MultiWriter(writers...).Write(data); err != nil {
		return nil, err
	}

	hashes := make([]model.Hash, len(names))
	for i, name := range names {
		hashes[i] = model.Hash{Algorithm: name, Value: hex.EncodeToString(hashers[i].Sum(nil))}
	}
	return hashes, nil
}
