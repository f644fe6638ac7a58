package charutil_test

import (
	"testing"
	"unicode/utf8"

	"neomacs.dev/display/charutil"
)

func TestUTF8RoundTrip(t *testing.T) {
	for r := rune(0); r <= 0x10FFFF; r += 997 { // sample the range, not exhaustive
		if r >= 0xD800 && r <= 0xDFFF {
			continue // surrogates are not valid scalar values
		}
		var buf [utf8.UTFMax]byte
		n := charutil.EncodeUTF8(r, buf[:])
		got, size := charutil.DecodeUTF8(buf[:n])
		if got != r || size != n {
			t.Fatalf("round trip failed for U+%04X: decoded %q size %d, wrote %d bytes", r, got, size, n)
		}
	}
}

func TestDecodeUTF8InvalidLeadingByte(t *testing.T) {
	r, size := charutil.DecodeUTF8([]byte{0x80})
	if r != 0xFFFD || size != 1 {
		t.Errorf("DecodeUTF8(continuation byte) = %q, %d; want U+FFFD, 1", r, size)
	}
}

func TestDecodeUTF8TruncatedSequence(t *testing.T) {
	r, size := charutil.DecodeUTF8([]byte{0xE4, 0xB8}) // truncated 3-byte sequence
	if r != 0xFFFD {
		t.Errorf("DecodeUTF8(truncated) = %q; want U+FFFD", r)
	}
	if size < 1 {
		t.Errorf("DecodeUTF8(truncated) size = %d; must make forward progress", size)
	}
}

func TestDisplayWidthRange(t *testing.T) {
	cases := []struct {
		ch   rune
		want int
	}{
		{'a', 1},
		{'\n', 0},
		{0x7F, 0},
		{0x0300, 0}, // combining grave accent
		{0x4E16, 2}, // 世
		{0x200B, 0}, // zero width space
		{0xFEFF, 0}, // BOM
	}
	for _, c := range cases {
		if got := charutil.DisplayWidth(c.ch); got != c.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", c.ch, got, c.want)
		}
	}
}

func TestDisplayWidthIsZeroOneOrTwo(t *testing.T) {
	for r := rune(0); r < 0x30000; r += 31 {
		w := charutil.DisplayWidth(r)
		if w != 0 && w != 1 && w != 2 {
			t.Fatalf("DisplayWidth(U+%04X) = %d, want 0, 1 or 2", r, w)
		}
	}
}

func TestByteCharPositionSymmetry(t *testing.T) {
	s := "A世B\tC"
	for bi := range s {
		cp := charutil.ByteToCharPos(s, bi)
		back := charutil.CharToBytePos(s, cp)
		if back != bi {
			t.Errorf("byte %d -> char %d -> byte %d, not symmetric", bi, cp, back)
		}
	}
}

func TestStringDisplayWidthCJK(t *testing.T) {
	if got, want := charutil.StringDisplayWidth("A世B"), 4; got != want {
		t.Errorf("StringDisplayWidth(%q) = %d, want %d", "A世B", got, want)
	}
}

func TestIsWordChar(t *testing.T) {
	if !charutil.IsWordChar('_') {
		t.Error("underscore should be a word char")
	}
	if charutil.IsWordChar(' ') {
		t.Error("space should not be a word char")
	}
}
