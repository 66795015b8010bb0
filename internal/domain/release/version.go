package release

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// minVersionComponents is the smallest tuple that is comparable.
	minVersionComponents = 2
	// maxVersionComponents caps the tuple at major.minor.patch.build.
	maxVersionComponents = 4
)

var errMalformedVersion = errors.New("malformed version")

// Version is an ordered tuple of non-negative integers parsed from a
// dotted numeric string such as "8.6" or "8.6.0.1".
type Version []int

// ParseVersion parses a dotted numeric string into a Version.
// The string must have between two and four components, each a plain
// decimal number without sign or prefix.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < minVersionComponents || len(parts) > maxVersionComponents {
		return nil, fmt.Errorf("%w: %q", errMalformedVersion, s)
	}

	result := make(Version, 0, len(parts))

	for _, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return nil, fmt.Errorf("%w: %q", errMalformedVersion, s)
		}

		number, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errMalformedVersion, s)
		}

		result = append(result, number)
	}

	return result, nil
}

// ParseTag parses a release tag into a Version after stripping any
// leading run of non-digit characters, so "v8.6.0" and "8.6.0" are
// equivalent.
func ParseTag(tag string) (Version, error) {
	trimmed := strings.TrimSpace(tag)

	start := 0
	for start < len(trimmed) && (trimmed[start] < '0' || trimmed[start] > '9') {
		start++
	}

	return ParseVersion(trimmed[start:])
}

// Ordering is the result of comparing two versions.
type Ordering int

// Possible results of Compare.
const (
	Less Ordering = iota - 1
	Equal
	Greater
)

// Compare orders two versions component-wise from left to right.
// The shorter tuple is treated as right-padded with zeros, so "1.2"
// compares equal to "1.2.0". Compare is the sole authority for update
// decisions.
func Compare(a, b Version) Ordering {
	length := len(a)
	if len(b) > length {
		length = len(b)
	}

	for i := 0; i < length; i++ {
		var left, right int
		if i < len(a) {
			left = a[i]
		}

		if i < len(b) {
			right = b[i]
		}

		switch {
		case left < right:
			return Less
		case left > right:
			return Greater
		}
	}

	return Equal
}

// String renders the version back to its dotted form.
func (v Version) String() string {
	parts := make([]string, 0, len(v))
	for _, component := range v {
		parts = append(parts, strconv.Itoa(component))
	}

	return strings.Join(parts, ".")
}
