package action

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Config maps option names to values.
type Config map[string]any

// Clone returns a shallow copy of c. A nil Config clones to an empty one.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge returns a new Config holding c overlaid with override.
//
// Only keys already present in c are taken from override; others are
// ignored. Each taken value is coerced to the type of the value it replaces.
// Neither c nor override is modified.
func (c Config) Merge(override Config) (Config, error) {
	out := c.Clone()
	for k, v := range override {
		def, ok := c[k]
		if !ok {
			continue
		}
		coerced, err := coerce(def, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOption, k, err)
		}
		out[k] = coerced
	}
	return out, nil
}

// Keys returns the option names in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// String returns the string option key, or "" if absent or not a string.
func (c Config) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// Int returns the int option key, or 0 if absent or not an int.
func (c Config) Int(key string) int {
	n, _ := c[key].(int)
	return n
}

// Bool returns the bool option key, or false if absent or not a bool.
func (c Config) Bool(key string) bool {
	b, _ := c[key].(bool)
	return b
}

// Format renders the config as sorted "key=value" pairs.
func (c Config) Format() string {
	parts := make([]string, 0, len(c))
	for _, k := range c.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c[k]))
	}
	return strings.Join(parts, " ")
}

// coerce converts v to the dynamic type of def.
// Supported default types are string, int and bool.
func coerce(def, v any) (any, error) {
	switch def.(type) {
	case string:
		return toString(v)
	case int:
		return toInt(v)
	case bool:
		return toBool(v)
	default:
		return nil, fmt.Errorf("unsupported option type %T", def)
	}
}

func toString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(x), nil
	default:
		return "", fmt.Errorf("cannot use %T as string", v)
	}
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case uint:
		if x > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", x)
		}
		return int(x), nil
	case uint64:
		if x > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", x)
		}
		return int(x), nil
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 0, 0)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as integer", x)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("cannot use %T as integer", v)
	}
}

// floatToInt accepts JSON numbers, which decode as float64, when they hold
// an integral value.
func floatToInt(f float64) (int, error) {
	if f != math.Trunc(f) || f > math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return int(f), nil
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, fmt.Errorf("cannot parse %q as boolean", x)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot use %T as boolean", v)
	}
}
