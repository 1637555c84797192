// Package ups implements parsing of the Megatec "Q1" status reply used by
// most cheap line-interactive and online UPS units. A reply looks like:
//
//	(229.0 229.0 229.0 014 50.0 2.26 30.0 00001001
//
// and carries, in order: input voltage, input fault voltage, output voltage,
// output load percent, input frequency, per-cell battery voltage, temperature,
// and an 8-bit status field.
package ups

import (
	"strconv"
)

// Snapshot maps metric names to their parsed values. Numeric values are always
// stored as float64 so a snapshot survives a JSON round-trip unchanged.
type Snapshot map[string]any

// SeriesCellMultiplier converts the per-cell battery voltage reported by the
// UPS into the total voltage of the battery string (16x 12V batteries in the
// reference deployment).
const SeriesCellMultiplier = 96.90265487

// StatusFlags maps each status flag name to its bit position in the 8-bit
// status field. Bit 7 is the first character of the status string, bit 0 the
// last. The names are fixed by the Q1 protocol.
var StatusFlags = map[string]uint{
	"utility_fail":      7,
	"battery_low":       6,
	"boost_buck_active": 5,
	"ups_failed":        4,
	"ups_type_standby":  3,
	"test_in_progress":  2,
	"shutdown_active":   1,
	"beeper_on":         0,
}

// ParseStatusBits decodes the 8-character status field into named flags. The
// string is indexed from the end, so bit 0 is the last character. Anything
// that is not exactly 8 characters of '0'/'1' yields an empty map.
func ParseStatusBits(bits string) map[string]int {
	if len(bits) != 8 {
		return map[string]int{}
	}
	for _, c := range bits {
		if c != '0' && c != '1' {
			return map[string]int{}
		}
	}
	flags := make(map[string]int, len(StatusFlags))
	for name, pos := range StatusFlags {
		flags[name] = int(bits[7-pos] - '0')
	}
	return flags
}

// FormatValue renders a single snapshot value the way the CLI and the sender
// input file expect it: bare, with no quoting or exponent noise.
func FormatValue(v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case string:
		return val
	default:
		return ""
	}
}

// IsScalar reports whether a snapshot value can be serialized as a single
// sender line. Composite values are skipped by the forwarder.
func IsScalar(v any) bool {
	switch v.(type) {
	case float64, int, string:
		return true
	}
	return false
}
