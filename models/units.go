package models

import "math"

// Unknown marks a numeric value that could not be collected.
const Unknown int64 = -1

// DefaultUnit is used when the caller does not ask for a unit.
const DefaultUnit = "kB"

// Units lists the accepted presentation units in increasing order.
var Units = []string{"B", "kB", "MB", "GB"}

// Known reports whether v holds a collected value.
func Known(v int64) bool {
	return v != Unknown
}

// ValidUnit reports whether unit is one of Units.
func ValidUnit(unit string) bool {
	for _, u := range Units {
		if u == unit {
			return true
		}
	}
	return false
}

// UnitExponent returns the power of 1024 that converts bytes into unit.
// Unrecognised units fall back to kB.
func UnitExponent(unit string) int {
	for i, u := range Units {
		if u == unit {
			return i
		}
	}
	return 1
}

// AsUnit converts a byte count into unit. Unknown stays Unknown.
func AsUnit(value int64, unit string) float64 {
	if !Known(value) {
		return float64(Unknown)
	}
	return float64(value) / math.Pow(1024, float64(UnitExponent(unit)))
}
