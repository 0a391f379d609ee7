package config

import (
	"fmt"
	"strconv"
	"strings"
)

// IntRange is an inclusive integer range. A fixed value has Min == Max.
type IntRange struct {
	Min int
	Max int
}

// FloatRange is an inclusive float range. A fixed value has Min == Max.
type FloatRange struct {
	Min float64
	Max float64
}

// ParseIntRange parses "3" or "1-4" into an IntRange.
func ParseIntRange(value string) (IntRange, error) {
	lo, hi, err := splitRange(value)
	if err != nil {
		return IntRange{}, err
	}
	minV, err := strconv.Atoi(lo)
	if err != nil {
		return IntRange{}, fmt.Errorf("range %q: %w", value, err)
	}
	maxV := minV
	if hi != "" {
		if maxV, err = strconv.Atoi(hi); err != nil {
			return IntRange{}, fmt.Errorf("range %q: %w", value, err)
		}
	}
	if maxV < minV {
		return IntRange{}, fmt.Errorf("range %q: max below min", value)
	}
	return IntRange{Min: minV, Max: maxV}, nil
}

// ParseFloatRange parses "2.0" or "1.5-3.0" into a FloatRange.
func ParseFloatRange(value string) (FloatRange, error) {
	lo, hi, err := splitRange(value)
	if err != nil {
		return FloatRange{}, err
	}
	minV, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return FloatRange{}, fmt.Errorf("range %q: %w", value, err)
	}
	maxV := minV
	if hi != "" {
		if maxV, err = strconv.ParseFloat(hi, 64); err != nil {
			return FloatRange{}, fmt.Errorf("range %q: %w", value, err)
		}
	}
	if maxV < minV {
		return FloatRange{}, fmt.Errorf("range %q: max below min", value)
	}
	return FloatRange{Min: minV, Max: maxV}, nil
}

// splitRange separates "a-b" into its bounds. Negative values are rejected;
// every range in the configuration surface is non-negative.
func splitRange(value string) (string, string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", "", fmt.Errorf("range: empty value")
	}
	if strings.HasPrefix(trimmed, "-") {
		return "", "", fmt.Errorf("range %q: negative values are not allowed", value)
	}
	lo, hi, found := strings.Cut(trimmed, "-")
	lo = strings.TrimSpace(lo)
	hi = strings.TrimSpace(hi)
	if found && hi == "" {
		return "", "", fmt.Errorf("range %q: missing upper bound", value)
	}
	return lo, hi, nil
}

// Fixed reports whether the range holds a single value.
func (r IntRange) Fixed() bool { return r.Min == r.Max }

func (r IntRange) String() string {
	if r.Fixed() {
		return strconv.Itoa(r.Min)
	}
	return strconv.Itoa(r.Min) + "-" + strconv.Itoa(r.Max)
}

// MarshalText implements encoding.TextMarshaler.
func (r IntRange) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *IntRange) UnmarshalText(text []byte) error {
	parsed, err := ParseIntRange(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Set implements pflag.Value so ranges can be bound directly to flags.
func (r *IntRange) Set(value string) error { return r.UnmarshalText([]byte(value)) }

// Type implements pflag.Value.
func (r *IntRange) Type() string { return "range" }

// Fixed reports whether the range holds a single value.
func (r FloatRange) Fixed() bool { return r.Min == r.Max }

func (r FloatRange) String() string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	if r.Fixed() {
		return format(r.Min)
	}
	return format(r.Min) + "-" + format(r.Max)
}

// MarshalText implements encoding.TextMarshaler.
func (r FloatRange) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *FloatRange) UnmarshalText(text []byte) error {
	parsed, err := ParseFloatRange(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Set implements pflag.Value so ranges can be bound directly to flags.
func (r *FloatRange) Set(value string) error { return r.UnmarshalText([]byte(value)) }

// Type implements pflag.Value.
func (r *FloatRange) Type() string { return "range" }
