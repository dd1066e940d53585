package ingestion_engine

import (
	"strings"
	"unicode/utf8"
)

// NormalizePageText drops control characters (except tab, newline and
// carriage return) and the DEL/Latin-1 range U+007F..U+00FF.
func NormalizePageText(s string) string {
	return strings.Map(func(r rune) rune {
		if isNoise(r) {
			return -1
		}
		return r
	}, s)
}

func isNoise(r rune) bool {
	switch {
	case r <= 0x08, r == 0x0b, r == 0x0c:
		return true
	case r >= 0x0e && r <= 0x1f:
		return true
	case r >= 0x7f && r <= 0xff:
		return true
	}
	return false
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// headRunes returns the first n characters of s.
func headRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
