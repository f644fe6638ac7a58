package gapbuffer

import (
	"testing"
	"unsafe"

	"neomacs.dev/display/internal/abi"
)

// newGappedBuffer lays out content as if the editor had inserted the gap
// right after the first gapAt bytes, returning a descriptor whose Addr
// mapping skips over the garbage gap bytes, exactly like the real buffer.
func newGappedBuffer(content string, gapAt int, gapSize int64) abi.BufferTextDescriptor {
	before := content[:gapAt]
	after := content[gapAt:]
	backing := make([]byte, 0, len(content)+int(gapSize))
	backing = append(backing, before...)
	backing = append(backing, make([]byte, gapSize)...) // garbage
	backing = append(backing, after...)

	return abi.BufferTextDescriptor{
		Beg:       uintptr(unsafe.Pointer(&backing[0])),
		GapPos:    int64(gapAt) + 1,
		GapByte:   int64(gapAt) + 1,
		Z:         int64(len(content)) + 1,
		ZByte:     int64(len(content)) + 1,
		GapSize:   gapSize,
		Multibyte: true,
	}
}

func TestCopyTextIdentitySpansGap(t *testing.T) {
	const content = "hello world"
	d := newGappedBuffer(content, 5, 4)

	got := CopyText(d, 1, int64(len(content))+1, nil)
	if string(got) != content {
		t.Errorf("CopyText() = %q, want %q", got, content)
	}
}

func TestCopyTextBeforeGapOnly(t *testing.T) {
	d := newGappedBuffer("hello world", 5, 4)
	got := CopyText(d, 1, 6, nil)
	if string(got) != "hello" {
		t.Errorf("CopyText() = %q, want %q", got, "hello")
	}
}

func TestCopyTextAfterGapOnly(t *testing.T) {
	d := newGappedBuffer("hello world", 5, 4)
	got := CopyText(d, 6, 12, nil)
	if string(got) != " world" {
		t.Errorf("CopyText() = %q, want %q", got, " world")
	}
}

func TestCopyTextEmptyRangeIsNoOp(t *testing.T) {
	d := newGappedBuffer("hello world", 5, 4)
	got := CopyText(d, 6, 6, []byte("keep"))
	if string(got) != "keep" {
		t.Errorf("CopyText() on empty range mutated out: %q", got)
	}
}

func TestCopyTextUnibyteWidensHighBytes(t *testing.T) {
	backing := []byte{'a', 0x80, 'b'}
	d := abi.BufferTextDescriptor{
		Beg:       uintptr(unsafe.Pointer(&backing[0])),
		GapByte:   4,
		GapSize:   0,
		Multibyte: false,
	}
	got := CopyText(d, 1, 4, nil)
	want := []byte{'a', 0xC0 | (0x80 >> 6), 0x80 | (0x80 & 0x3F), 'b'}
	if string(got) != string(want) {
		t.Errorf("CopyText() unibyte = %v, want %v", got, want)
	}
}

func TestCopyTextAppendsToReusedBuffer(t *testing.T) {
	d := newGappedBuffer("ab", 1, 0)
	buf := make([]byte, 0, 64)
	buf = CopyText(d, 1, 3, buf)
	if string(buf) != "ab" {
		t.Fatalf("first copy = %q", buf)
	}
	if cap(buf) != 64 {
		t.Errorf("expected reused capacity 64, got %d (reallocated)", cap(buf))
	}
}
