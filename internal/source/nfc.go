package source

import "golang.org/x/text/unicode/norm"

// NFC normalizes src to Unicode Normalization Form C. Normalization is
// performed once at the source boundary; every identifier comparison
// downstream (IdKey, PathKey) assumes its input is already NFC.
//
// IsNormal is checked first because it is allocation-free for the common
// case of already-normalized source, the same guard the teacher's lexer
// uses before calling norm.NFC.Bytes.
func NFC(src []byte) []byte {
	if norm.NFC.IsNormal(src) {
		return src
	}
	return norm.NFC.Bytes(src)
}

// NFCString is the string-oriented form of NFC, used for identifier and
// path-component normalization (IdKey).
func NFCString(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
