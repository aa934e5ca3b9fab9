// Package resolve implements C4: name resolution — IdKey/PathKey, the
// universe scope, scope stacks, using/import expansion, and qualified
// lookup.
package resolve

import (
	"strings"

	"github.com/cursivelang/cursive0/internal/source"
)

// IdKey is the NFC form of an identifier string; two names collide iff
// their IdKeys are equal (§4.4).
type IdKey string

// NewIdKey normalizes name to its canonical IdKey.
func NewIdKey(name string) IdKey {
	return IdKey(source.NFCString(name))
}

// PathKey is the NFC form of a full module/type path, `::`-joined.
type PathKey string

// NewPathKey normalizes each path component and joins them with `::`.
func NewPathKey(path []string) PathKey {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = source.NFCString(p)
	}
	return PathKey(strings.Join(parts, "::"))
}

// reservedPrefix and reservedExact implement §4.4's reserved-identifier
// rule: any identifier whose NFC prefix is "gen_", or equal to "cursive",
// is reserved.
const reservedPrefix = "gen_"
const reservedExact = "cursive"

// IsReservedIdent reports whether name is a reserved identifier.
func IsReservedIdent(name string) bool {
	k := string(NewIdKey(name))
	return k == reservedExact || strings.HasPrefix(k, reservedPrefix)
}

// IsReservedPath reports whether any component of path is reserved.
func IsReservedPath(path []string) bool {
	for _, p := range path {
		if IsReservedIdent(p) {
			return true
		}
	}
	return false
}
