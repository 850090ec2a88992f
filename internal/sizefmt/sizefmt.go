// Package sizefmt renders byte counts as fixed-width, human-scaled
// strings for tabular display.
package sizefmt

import (
	"fmt"
	"strconv"
)

// NA is the sentinel rendered whenever a value is missing or unparsable.
const NA = "N/A"

var units = []string{"B", "KiB", "MiB", "GiB", "TiB"}

// Bytes formats a byte count, scaling by 1024 through B..TiB and
// stopping at the first unit below 1024. TiB is never divided further.
// The numeric part always carries two decimals and is left-padded so
// values up to 999.99 align in a column.
func Bytes(size float64) string {
	for i, unit := range units {
		if size < 1024 || i == len(units)-1 {
			switch {
			case size < 10:
				return fmt.Sprintf("  %.2f %s", size, unit)
			case size < 100:
				return fmt.Sprintf(" %.2f %s", size, unit)
			default:
				return fmt.Sprintf("%.2f %s", size, unit)
			}
		}
		size /= 1024
	}
	return NA // unreachable
}

// Parse formats a decimal byte-count string as reported by the LVM
// tools (--units b --nosuffix). Empty or non-numeric input yields NA.
func Parse(s string) string {
	if s == "" {
		return NA
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NA
	}
	return Bytes(v)
}

// Uint formats an unsigned byte count.
func Uint(n uint64) string {
	return Bytes(float64(n))
}
