// Package gapbuffer reads text out of a host gap buffer, handling the gap
// discontinuity and the multibyte/unibyte distinction, without allocating
// per call.
package gapbuffer

import (
	"unsafe"

	"neomacs.dev/display/internal/abi"
)

func rawBytes(addr uintptr, n int64) []byte {
	if n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(n))
}

// CopyText appends the text in the 1-based byte range [byteFrom, byteTo) to
// out, which the caller owns and reuses across frames to avoid allocation.
// It returns the (possibly reallocated) slice.
func CopyText(d abi.BufferTextDescriptor, byteFrom, byteTo int64, out []byte) []byte {
	if byteFrom >= byteTo {
		return out
	}
	if d.Multibyte {
		return copyMultibyte(d, byteFrom, byteTo, out)
	}
	return copyUnibyte(d, byteFrom, byteTo, out)
}

func copyMultibyte(d abi.BufferTextDescriptor, from, to int64, out []byte) []byte {
	switch {
	case to <= d.GapByte:
		// Entirely before the gap: one contiguous copy.
		out = append(out, rawBytes(d.Addr(from), to-from)...)
	case from >= d.GapByte:
		// Entirely after the gap.
		out = append(out, rawBytes(d.Addr(from), to-from)...)
	default:
		// Spans the gap: two contiguous copies either side of it.
		out = append(out, rawBytes(d.Addr(from), d.GapByte-from)...)
		out = append(out, rawBytes(d.Addr(d.GapByte), to-d.GapByte)...)
	}
	return out
}

// copyUnibyte widens each raw byte to its 2-byte UTF-8 form when it is
// ≥ 0x80, preserving a 1:1 character count between the unibyte source and
// the UTF-8 output.
func copyUnibyte(d abi.BufferTextDescriptor, from, to int64, out []byte) []byte {
	for p := from; p < to; p++ {
		b := *(*byte)(unsafe.Pointer(d.Addr(p)))
		if b < 0x80 {
			out = append(out, b)
		} else {
			out = append(out, 0xC0|(b>>6), 0x80|(b&0x3F))
		}
	}
	return out
}
