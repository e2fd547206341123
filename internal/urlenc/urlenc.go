// Package urlenc percent-encodes text for use in Solr query strings.
package urlenc

import (
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// Encode percent-encodes every rune outside the ASCII letter and digit
// ranges: the rune's UTF-8 bytes are emitted as one "%XX" triplet per byte,
// with uppercase hex digits. Letters and digits pass through unchanged.
//
// Encode is pure and one-directional; no decoder is provided.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var buf [utf8.UTFMax]byte
	for _, r := range s {
		if isAlphanumeric(r) {
			b.WriteRune(r)
			continue
		}
		n := utf8.EncodeRune(buf[:], r)
		for _, c := range buf[:n] {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		}
	}
	return b.String()
}

func isAlphanumeric(r rune) bool {
	return (r >= '0' && r <= '9') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z')
}
