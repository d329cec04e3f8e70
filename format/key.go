package format

import (
	"strconv"
	"strings"
)

// Version discriminates storage versions within a format. Most formats use a
// single number (the Anvil data version), others a tuple.
type Version []int

// Compare orders versions element by element; a missing element counts as 0.
func (v Version) Compare(other Version) int {
	for i := 0; i < max(len(v), len(other)); i++ {
		a, b := v.at(i), other.at(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

func (v Version) at(i int) int {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// Major returns the first element, or 0 for an empty version.
func (v Version) Major() int {
	return v.at(0)
}

func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Key identifies the storage format and version of a chunk.
type Key struct {
	Format  string
	Version Version
}

func NewKey(format string, version ...int) Key {
	return Key{Format: format, Version: Version(version)}
}

func (k Key) String() string {
	return k.Format + "@" + k.Version.String()
}
