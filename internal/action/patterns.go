package action

import (
	"encoding/base32"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/sha3"
)

// Patterns options.
const (
	// OptRedact hides the tail of matches that are credentials.
	OptRedact = "redact"

	// OptMaxMatches limits the number of listed matches.
	OptMaxMatches = "maxMatches"
)

// typeWidth is the width of the pattern name column.
const typeWidth = 16

// onionV3Version is the version byte of a v3 onion address.
const onionV3Version = 0x03

// pattern is one entry of the catalog scanned by Patterns.
type pattern struct {
	name string
	re   *regexp.Regexp

	// redact, when set, marks matches as credentials and returns the text
	// shown for them while redaction is on.
	redact func(text string) string

	// note, when set, annotates every match.
	note func(match []byte) string
}

// patternCatalog lists the patterns in display order for matches that
// start at the same offset.
var patternCatalog = []pattern{
	{
		name: "email",
		re:   regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
	},
	{
		name: "url",
		re:   regexp.MustCompile(`https?://[A-Za-z0-9._~:/?#\[\]@!$&'()*+,;=%\-]+`),
	},
	{
		name: "onion-v3",
		re:   regexp.MustCompile(`[a-z2-7]{56}\.onion`),
		note: onionChecksumNote,
	},
	{
		name: "bitcoin-bech32",
		re:   regexp.MustCompile(`\bbc1[a-z0-9]{39,59}\b`),
	},
	{
		name: "ethereum",
		re:   regexp.MustCompile(`\b0x[a-fA-F0-9]{40}\b`),
	},
	{
		name: "private-key",
		re:   regexp.MustCompile(`-----BEGIN (?:[A-Z0-9]+ )*PRIVATE KEY(?: BLOCK)?-----`),
	},
	{
		name: "putty-key",
		re:   regexp.MustCompile(`PuTTY-User-Key-File-\d+: [a-z0-9-]+`),
	},
	{
		name:   "aws-access-key",
		re:     regexp.MustCompile(`\b(?:AKIA|ABIA|ACCA|ASIA)[A-Z0-9]{16}\b`),
		redact: keepPrefix(10),
	},
	{
		name:   "github-token",
		re:     regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9_]{36,255}\b`),
		redact: keepPrefix(20),
	},
	{
		name:   "database-uri",
		re:     regexp.MustCompile(`(?i)(?:postgres|mysql|mongodb|redis)://[^@\s]+@[^/\s]+/\w+`),
		redact: redactURIPassword,
	},
}

// Patterns lists well-known textual patterns found anywhere in the data:
// addresses, identifiers and credentials.
type Patterns struct {
	base
}

// NewPatterns creates a Patterns with its default options.
func NewPatterns() *Patterns {
	return &Patterns{base: base{
		kind:        KindPatterns,
		description: "e-mail, URL, onion, wallet and credential patterns",
		defaults: Config{
			OptRedact:     true,
			OptMaxMatches: 100,
		},
	}}
}

// uriPassword captures the user and password of a URI's userinfo.
var uriPassword = regexp.MustCompile(`://([^:@/\s]+):([^@\s]+)@`)

// patternMatch is one match of a catalog entry over data[off:end].
type patternMatch struct {
	off   int
	end   int
	index int
	text  string
}

// Process implements Action.
func (p *Patterns) Process(override Config, data []byte) (string, error) {
	cfg, err := p.config(override)
	if err != nil {
		return "", err
	}

	limit := cfg.Int(OptMaxMatches)
	if limit < 1 {
		return "", p.invalidOption(OptMaxMatches, limit, "a positive number")
	}
	redact := cfg.Bool(OptRedact)

	matches := scanPatterns(data)
	if redact {
		matches = dropInsideCredentials(matches)
	}

	t := newTable(offsetWidth, typeWidth, valueWidth)
	t.row("Offset", "Type", "Match")
	t.separator()
	for _, m := range matches[:min(limit, len(matches))] {
		pat := patternCatalog[m.index]
		text := m.text
		if redact && pat.redact != nil {
			text = pat.redact(text)
		}
		t.row(formatOffset(m.off, true), pat.name, text)
	}
	if hidden := len(matches) - limit; hidden > 0 {
		t.row("", "", fmt.Sprintf("%d more matches not shown", hidden))
	}
	t.separator()
	return t.String(), nil
}

// scanPatterns runs every catalog entry over data and returns the matches
// ordered by offset, then by catalog position.
func scanPatterns(data []byte) []patternMatch {
	var matches []patternMatch
	for i, pat := range patternCatalog {
		for _, loc := range pat.re.FindAllIndex(data, -1) {
			raw := data[loc[0]:loc[1]]
			text := strings.ToValidUTF8(string(raw), string(utf8.RuneError))
			if pat.note != nil {
				text += " (" + pat.note(raw) + ")"
			}
			matches = append(matches, patternMatch{off: loc[0], end: loc[1], index: i, text: text})
		}
	}

	slices.SortStableFunc(matches, func(a, b patternMatch) int {
		if a.off != b.off {
			return a.off - b.off
		}
		return a.index - b.index
	})
	return matches
}

// dropInsideCredentials removes matches that overlap a credential, such as
// the "password@host" part of a database URI read as an e-mail address.
func dropInsideCredentials(matches []patternMatch) []patternMatch {
	var credentials []patternMatch
	for _, m := range matches {
		if patternCatalog[m.index].redact != nil {
			credentials = append(credentials, m)
		}
	}

	return slices.DeleteFunc(matches, func(m patternMatch) bool {
		if patternCatalog[m.index].redact != nil {
			return false
		}
		for _, c := range credentials {
			if m.off < c.end && c.off < m.end {
				return true
			}
		}
		return false
	})
}

// keepPrefix redacts all but the first n characters.
func keepPrefix(n int) func(string) string {
	return func(text string) string {
		return redactValue(text, n)
	}
}

// redactValue keeps the first keep characters of value.
func redactValue(value string, keep int) string {
	n := 0
	for i := range value {
		if n == keep {
			return value[:i] + "...[REDACTED]"
		}
		n++
	}
	return value
}

// redactURIPassword replaces the password of every userinfo in text.
func redactURIPassword(text string) string {
	return uriPassword.ReplaceAllString(text, "://$1:[REDACTED]@")
}

// onionChecksumNote verifies the checksum and version embedded in a v3
// onion address: the 56 base32 characters decode to a 32-byte public key,
// a 2-byte checksum and the version byte, and the checksum is the start of
// SHA3-256(".onion checksum" || pubkey || version).
func onionChecksumNote(match []byte) string {
	label := strings.TrimSuffix(string(match), ".onion")
	decoded, err := base32.StdEncoding.DecodeString(strings.ToUpper(label))
	if err != nil || len(decoded) != 35 {
		return "malformed"
	}

	pubkey, checksum, version := decoded[:32], decoded[32:34], decoded[34]
	if version != onionV3Version {
		return fmt.Sprintf("unknown version %d", version)
	}

	h := sha3.New256()
	h.Write([]byte(".onion checksum"))
	h.Write(pubkey)
	h.Write([]byte{version})
	sum := h.Sum(nil)

	if checksum[0] != sum[0] || checksum[1] != sum[1] {
		return "bad checksum"
	}
	return "checksum ok"
}
