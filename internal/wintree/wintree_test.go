package wintree

import (
	"testing"
	"unsafe"

	"neomacs.dev/display/internal/abi"
)

type fakeHost struct{ offsets abi.FieldOffsets }

func (f fakeHost) FetchFieldOffsets() abi.FieldOffsets   { return f.offsets }
func (f fakeHost) MarkerPosition(abi.TaggedValue) int64 { return 0 }

func ensureOffsets(t *testing.T) {
	t.Helper()
	abi.Reset()
	t.Cleanup(abi.Reset)
	abi.EnsureOffsetsValid(fakeHost{offsets: abi.Expected})
}

// object is a raw block of host heap memory big enough to hold a window or
// frame struct plus a pseudovector header, addressed the same way the real
// unsafe reads would.
type object struct{ mem []byte }

func newObject(size int) *object {
	return &object{mem: make([]byte, size)}
}

func (o *object) addr() uintptr { return uintptr(unsafe.Pointer(&o.mem[0])) }

func (o *object) putInt64(offset int, v int64) {
	*(*int64)(unsafe.Pointer(o.addr() + uintptr(offset))) = v
}

func taggedVectorlike(o *object) abi.TaggedValue {
	return abi.TaggedValue(int64(o.addr()) | 0x5)
}

func newBuffer() *object {
	o := newObject(8)
	header := abi.Expected.PseudovectorFlagMask | (abi.Expected.PvecTypeBuffer << uint(abi.Expected.PseudovectorAreaBits))
	o.putInt64(0, header)
	return o
}

func newWindow(contents abi.TaggedValue, next abi.TaggedValue, frame abi.TaggedValue) *object {
	o := newObject(128)
	o.putInt64(abi.Expected.WindowContents, int64(contents))
	o.putInt64(abi.Expected.WindowNext, int64(next))
	o.putInt64(abi.Expected.WindowFrame, int64(frame))
	return o
}

func newFrame(root, mini abi.TaggedValue) *object {
	o := newObject(32)
	o.putInt64(abi.Expected.FrameRootWindow, int64(root))
	o.putInt64(abi.Expected.FrameMinibufferWindow, int64(mini))
	return o
}

func TestWalkSingleLeaf(t *testing.T) {
	ensureOffsets(t)

	buf := newBuffer()
	leaf := newWindow(taggedVectorlike(buf), 0, 0)
	fr := newFrame(taggedVectorlike(leaf), 0)

	leaves := Collect(abi.Frame(fr.addr()))
	if len(leaves) != 1 {
		t.Fatalf("Collect() = %d leaves, want 1", len(leaves))
	}
	if leaves[0] != abi.Window(leaf.addr()) {
		t.Errorf("Collect() returned wrong window")
	}
}

func TestWalkSplitCountsBothChildren(t *testing.T) {
	ensureOffsets(t)

	bufA, bufB := newBuffer(), newBuffer()
	leafA := newWindow(taggedVectorlike(bufA), 0, 0)
	leafB := newWindow(taggedVectorlike(bufB), 0, 0)
	leafA.putInt64(abi.Expected.WindowNext, int64(taggedVectorlike(leafB)))

	internal := newWindow(taggedVectorlike(leafA), 0, 0)
	fr := newFrame(taggedVectorlike(internal), 0)

	if n := Count(abi.Frame(fr.addr())); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestWalkCountsOwnedMinibuffer(t *testing.T) {
	ensureOffsets(t)

	buf := newBuffer()
	leaf := newWindow(taggedVectorlike(buf), 0, 0)

	fr := newFrame(abi.TaggedValue(0), abi.TaggedValue(0))
	mini := newWindow(taggedVectorlike(newBuffer()), 0, 0)
	// Point the minibuffer window's frame back-pointer at fr itself.
	mini.putInt64(abi.Expected.WindowFrame, int64(fr.addr())|0x5)
	fr.putInt64(abi.Expected.FrameRootWindow, int64(taggedVectorlike(leaf)))
	fr.putInt64(abi.Expected.FrameMinibufferWindow, int64(taggedVectorlike(mini)))

	if n := Count(abi.Frame(fr.addr())); n != 2 {
		t.Errorf("Count() = %d, want 2 (root leaf + owned minibuffer)", n)
	}
}

func TestWalkTruncatesDeepTrees(t *testing.T) {
	ensureOffsets(t)

	// Wrap a single leaf in MaxDepth+5 nested internal nodes; the walk must
	// not panic or infinite-loop, and must not visit anything past the bound,
	// so the leaf below it is never counted.
	buf := newBuffer()
	leaf := newWindow(taggedVectorlike(buf), 0, 0)
	top := taggedVectorlike(leaf)
	for i := 0; i < MaxDepth+5; i++ {
		w := newWindow(top, 0, 0)
		top = taggedVectorlike(w)
	}

	fr := newFrame(top, 0)
	if n := Count(abi.Frame(fr.addr())); n != 0 {
		t.Errorf("Count() = %d, want 0 (leaf lies past the depth bound)", n)
	}
}
