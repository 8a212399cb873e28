package action

import (
	"fmt"
	"strings"
)

// Kind identifies an action variant.
type Kind string

// Supported action kinds.
const (
	KindHexdump   Kind = "hexdump"
	KindTimestamp Kind = "timestamp"
	KindInteger   Kind = "integer"
	KindStrings   Kind = "strings"
	KindGUID      Kind = "guid"
	KindCBOR      Kind = "cbor"
	KindEXIF      Kind = "exif"
	KindPatterns  Kind = "patterns"
)

// Kinds returns all supported kinds in display order.
func Kinds() []Kind {
	return []Kind{
		KindHexdump,
		KindTimestamp,
		KindInteger,
		KindStrings,
		KindGUID,
		KindCBOR,
		KindEXIF,
		KindPatterns,
	}
}

// ParseKind converts a name to a Kind. Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Action renders a byte slice as text.
//
// Design decision: Process takes the override and the data as arguments
// rather than storing them, so a single Action value can be shared by any
// number of invocations and goroutines.
type Action interface {
	// Kind returns the action's variant tag.
	Kind() Kind

	// Description returns a one-line summary for listings.
	Description() string

	// Defaults returns a copy of the action's default configuration.
	Defaults() Config

	// Process renders data using the defaults merged with override.
	// data is never modified.
	Process(override Config, data []byte) (string, error)
}

// New creates the action for kind with its built-in defaults.
func New(kind Kind) (Action, error) {
	switch kind {
	case KindHexdump:
		return NewHexdump(), nil
	case KindTimestamp:
		return NewTimestamp(), nil
	case KindInteger:
		return NewInteger(), nil
	case KindStrings:
		return NewStrings(), nil
	case KindGUID:
		return NewGUID(), nil
	case KindCBOR:
		return NewCBOR(), nil
	case KindEXIF:
		return NewEXIF(), nil
	case KindPatterns:
		return NewPatterns(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, string(kind))
	}
}

// Invocation pairs an action with the override it is run with.
type Invocation struct {
	// Action is the action to run.
	Action Action

	// Override is merged onto the action defaults for this invocation.
	Override Config
}

// Resolve returns the configuration the invocation will run with.
func (inv Invocation) Resolve() (Config, error) {
	return inv.Action.Defaults().Merge(inv.Override)
}

// Run processes data with the invocation's override.
func (inv Invocation) Run(data []byte) (string, error) {
	return inv.Action.Process(inv.Override, data)
}

// base carries the fields shared by every action.
type base struct {
	kind        Kind
	description string
	defaults    Config
}

// Kind implements Action.
func (b *base) Kind() Kind {
	return b.kind
}

// Description implements Action.
func (b *base) Description() string {
	return b.description
}

// Defaults implements Action.
func (b *base) Defaults() Config {
	return b.defaults.Clone()
}

// config merges override onto the defaults.
func (b *base) config(override Config) (Config, error) {
	cfg, err := b.defaults.Merge(override)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.kind, err)
	}
	return cfg, nil
}

// invalidOption builds an ErrInvalidOption error for one key.
func (b *base) invalidOption(key string, value any, expected string) error {
	return fmt.Errorf("%s: %w: %s=%v (expected %s)", b.kind, ErrInvalidOption, key, value, expected)
}
