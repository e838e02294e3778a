package filter

import (
	"fmt"
	"strconv"
	"strings"
)

const rangeSeparator = ".."

// Range is an inclusive bound pair. A nil bound is open.
// A nil *Range places no constraint at all.
type Range struct {
	Min *uint32
	Max *uint32
}

// Between returns the closed range [min, max]
func Between(min, max uint32) *Range {
	return &Range{Min: &min, Max: &max}
}

// AtLeast returns the range [min, ∞)
func AtLeast(min uint32) *Range {
	return &Range{Min: &min}
}

// AtMost returns the range [0, max]
func AtMost(max uint32) *Range {
	return &Range{Max: &max}
}

// Contains reports whether v satisfies both bounds
func (r *Range) Contains(v uint32) bool {
	if r == nil {
		return true
	}
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// String renders the range in the form accepted by ParseRange
func (r *Range) String() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	if r.Min != nil {
		b.WriteString(strconv.FormatUint(uint64(*r.Min), 10))
	}
	b.WriteString(rangeSeparator)
	if r.Max != nil {
		b.WriteString(strconv.FormatUint(uint64(*r.Max), 10))
	}
	return b.String()
}

// ParseRange parses "MIN..MAX" where either side may be omitted.
// A bare number N is the range N..N.
func ParseRange(s string) (*Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty range")
	}

	minStr, maxStr, found := strings.Cut(s, rangeSeparator)
	if !found {
		n, err := parseBound(s)
		if err != nil {
			return nil, err
		}
		return Between(n, n), nil
	}

	r := &Range{}
	if minStr = strings.TrimSpace(minStr); minStr != "" {
		n, err := parseBound(minStr)
		if err != nil {
			return nil, err
		}
		r.Min = &n
	}
	if maxStr = strings.TrimSpace(maxStr); maxStr != "" {
		n, err := parseBound(maxStr)
		if err != nil {
			return nil, err
		}
		r.Max = &n
	}

	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return nil, fmt.Errorf("range %q: min is greater than max", s)
	}
	return r, nil
}

func parseBound(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid range bound %q: %w", s, err)
	}
	return uint32(n), nil
}
