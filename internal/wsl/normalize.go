// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"strings"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
)

// NormalizeName strips NUL, byte-order marks and other control characters
// from a distro name and trims surrounding whitespace.
func NormalizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\ufeff' || unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(cleaned)
}

// ParseList turns raw `wsl -l -q` output into normalized, non-empty names in
// listing order.
func ParseList(raw string) []string {
	text := decode(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var names []string
	for line := range strings.SplitSeq(text, "\n") {
		if n := NormalizeName(line); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// decode converts UTF-16LE listing output to UTF-8. Only output with a
// UTF-16 byte-order mark or with a NUL at every odd offset is decoded; stray
// NULs in single-byte output are left for NormalizeName to strip.
func decode(raw string) string {
	if !strings.HasPrefix(raw, "\xff\xfe") && !interleaved(raw) {
		return raw
	}
	dec := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewDecoder()
	out, err := dec.String(raw)
	if err != nil {
		return raw
	}
	return out
}

// interleaved reports whether raw has the ASCII-in-UTF-16LE shape: even
// length with a NUL in every high byte.
func interleaved(raw string) bool {
	if raw == "" || len(raw)%2 != 0 {
		return false
	}
	for i := 1; i < len(raw); i += 2 {
		if raw[i] != 0 {
			return false
		}
	}
	return true
}
