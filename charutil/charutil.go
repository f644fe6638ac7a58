// Package charutil provides the character classification and display-width
// arithmetic the layout engine depends on. None of this is the hard part —
// it is plumbing the layout engine calls into on every character — but it
// has to be right, since a wrong display width throws off every column
// after it.
package charutil

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// DecodeUTF8 decodes a single rune from the start of b, substituting
// utf8.RuneError (U+FFFD) for malformed or truncated sequences, and always
// reporting a non-zero byte count so callers make forward progress.
func DecodeUTF8(b []byte) (r rune, size int) {
	if len(b) == 0 {
		return 0, 0
	}
	r, size = utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return utf8.RuneError, 1
	}
	return r, size
}

// EncodeUTF8 writes ch into buf and returns the number of bytes written.
func EncodeUTF8(ch rune, buf []byte) int {
	return utf8.EncodeRune(buf, ch)
}

// CharBytes returns the number of UTF-8 bytes required to encode ch.
func CharBytes(ch rune) int { return utf8.RuneLen(ch) }

// DisplayWidth returns the terminal-column width of ch: 0 for combining
// marks, zero-width joiners, BOM and C0/DEL controls; 2 for East Asian
// Wide/Fullwidth characters; 1 otherwise.
func DisplayWidth(ch rune) int {
	switch {
	case ch < 0x20 || ch == 0x7F:
		return 0
	case ch < 0x80:
		return 1
	case IsCombiningMark(ch):
		return 0
	case isZeroWidth(ch):
		return 0
	case IsWideChar(ch):
		return 2
	default:
		return 1
	}
}

func isZeroWidth(ch rune) bool {
	switch ch {
	case 0x200B, 0x200C, 0x200D, 0x2060, 0xFEFF:
		return true
	}
	return false
}

// IsWideChar reports whether ch occupies two monospace cells. It defers to
// golang.org/x/text/width's East Asian Width classification — Wide (W) and
// Fullwidth (F) both count as two columns — which is the authoritative
// Unicode-derived table this package's layout callers should trust over
// any hand-maintained range list.
func IsWideChar(ch rune) bool {
	switch width.LookupRune(ch).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// StringDisplayWidth sums DisplayWidth over every rune in s.
func StringDisplayWidth(s string) int {
	total := 0
	for _, r := range s {
		total += DisplayWidth(r)
	}
	return total
}

// IsCombiningMark reports whether ch is a Unicode combining mark
// (categories Mn, Mc, Me).
func IsCombiningMark(ch rune) bool {
	return unicode.Is(unicode.Mn, ch) || unicode.Is(unicode.Mc, ch) || unicode.Is(unicode.Me, ch)
}

// IsControl reports whether ch is a C0, DEL, or C1 control character.
func IsControl(ch rune) bool {
	return ch < 0x20 || ch == 0x7F || (ch >= 0x80 && ch <= 0x9F)
}

// IsPrintable reports whether ch has a visible glyph: not a control
// character, surrogate, or noncharacter.
func IsPrintable(ch rune) bool {
	if IsControl(ch) {
		return false
	}
	if ch >= 0xD800 && ch <= 0xDFFF {
		return false
	}
	if ch >= 0xFDD0 && ch <= 0xFDEF {
		return false
	}
	if ch&0xFFFE == 0xFFFE && ch <= 0x10FFFF {
		return false
	}
	return true
}

// IsWhitespace reports whether ch is space, tab, newline, form-feed, or
// carriage return — the Emacs notion of whitespace, not Unicode's broader
// one.
func IsWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// IsWordChar reports whether ch is a "word constituent" in the default
// sense: alphanumeric or underscore.
func IsWordChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

// Case conversion, delegating to the stdlib tables; Go's unicode package
// already returns the single most-common mapping per rune, matching the
// "first codepoint only" policy for multi-codepoint case foldings.
func Upcase(ch rune) rune    { return unicode.ToUpper(ch) }
func Downcase(ch rune) rune  { return unicode.ToLower(ch) }
func Titlecase(ch rune) rune { return unicode.ToTitle(ch) }

func StringUpcase(s string) string {
	r := []rune(s)
	for i, ch := range r {
		r[i] = unicode.ToUpper(ch)
	}
	return string(r)
}

func StringDowncase(s string) string {
	r := []rune(s)
	for i, ch := range r {
		r[i] = unicode.ToLower(ch)
	}
	return string(r)
}

// StringCharCount returns the number of Unicode scalar values in s.
func StringCharCount(s string) int { return utf8.RuneCountInString(s) }

// ByteToCharPos converts a byte offset on a char boundary to a character
// index. Panics if bytePos is not on a boundary or exceeds len(s), mirroring
// the host's own assumption that layout only ever deals in boundary-aligned
// positions.
func ByteToCharPos(s string, bytePos int) int {
	if bytePos < 0 || bytePos > len(s) {
		panic("charutil: byte position out of range")
	}
	if bytePos < len(s) && !utf8.RuneStart(s[bytePos]) {
		panic("charutil: byte position is not on a character boundary")
	}
	return utf8.RuneCountInString(s[:bytePos])
}

// CharToBytePos converts a character index to a byte offset in s.
func CharToBytePos(s string, charPos int) int {
	i := 0
	for bi := range s {
		if i == charPos {
			return bi
		}
		i++
	}
	if charPos == i {
		return len(s)
	}
	panic("charutil: char position out of range")
}

// CharAtByte returns the rune starting at byte position bi in s.
func CharAtByte(s string, bi int) rune {
	r, _ := utf8.DecodeRuneInString(s[bi:])
	return r
}
