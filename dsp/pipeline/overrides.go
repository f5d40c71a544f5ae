package pipeline

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Overrides are per-request preset parameters, keyed by parameter name.
type Overrides struct {
	Num map[string]float64
	// Name is an optional label for the override set. It is only logged.
	Name string
}

// GetNum returns the override for key, or def when it is missing or not
// finite.
func (o Overrides) GetNum(key string, def float64) float64 {
	if o.Num == nil {
		return def
	}

	v, ok := o.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// Empty reports whether o carries no values.
func (o Overrides) Empty() bool {
	return len(o.Num) == 0 && o.Name == ""
}

// Keys returns the numeric override keys in sorted order.
func (o Overrides) Keys() []string {
	keys := make([]string, 0, len(o.Num))
	for k := range o.Num {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// ParseOverrides decodes a JSON object of overrides. Numbers and numeric
// strings are accepted; "name" must be a string. Other value types are an
// ErrInvalidOverride error. Keys no preset knows are kept and later
// ignored.
func ParseOverrides(data []byte) (Overrides, error) {
	var raw map[string]any

	if err := sonic.Unmarshal(data, &raw); err != nil {
		return Overrides{}, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}

	if raw == nil {
		return Overrides{}, fmt.Errorf("%w: top level must be a JSON object", ErrInvalidOverride)
	}

	o := Overrides{Num: make(map[string]float64, len(raw))}

	for key, v := range raw {
		if key == "name" {
			name, ok := v.(string)
			if !ok {
				return Overrides{}, fmt.Errorf("%w: name must be a string, got %T", ErrInvalidOverride, v)
			}

			o.Name = name

			continue
		}

		num, err := overrideNumber(v)
		if err != nil {
			return Overrides{}, fmt.Errorf("%w: %s: %w", ErrInvalidOverride, key, err)
		}

		o.Num[key] = num
	}

	return o, nil
}

// LoadOverrides reads and parses an override file.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("load overrides: %w", err)
	}

	o, err := ParseOverrides(data)
	if err != nil {
		return Overrides{}, fmt.Errorf("load overrides %s: %w", path, err)
	}

	return o, nil
}

func overrideNumber(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", x)
		}

		return f, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
