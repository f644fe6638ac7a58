// Package wintree walks a host frame's window tree down to its leaves
// without recursion, so a pathological or cyclic tree can never blow the
// Go stack.
package wintree

import (
	"log"

	"neomacs.dev/display/internal/abi"
)

// MaxDepth bounds the walk stack. Trees deeper than this are truncated;
// the excess is logged rather than silently dropped.
const MaxDepth = 64

// Walk enumerates the leaf windows of frame's window tree, calling visit
// for each one. If the frame owns its minibuffer window (the minibuffer's
// frame back-pointer is the frame itself, checked by pointer identity), it
// is counted as one additional leaf.
func Walk(frame abi.Frame, visit func(abi.Window)) {
	root := abi.FrameRootWindow(frame)
	walkSubtree(root, visit)

	mini := abi.FrameMinibufferWindow(frame)
	if miniPtr, ok := mini.Vectorlike(); ok {
		if ownerPtr, ok := abi.WindowFrame(abi.Window(miniPtr)).Vectorlike(); ok && ownerPtr == uintptr(frame) {
			visit(abi.Window(miniPtr))
		}
	}
}

// walkSubtree is the bounded, non-recursive leaf walk. An internal node's
// contents is a vectorlike-window; a leaf's contents is a
// vectorlike-buffer. Siblings are linked through `next`.
func walkSubtree(root abi.TaggedValue, visit func(abi.Window)) {
	type frame struct {
		win   abi.Window
		depth int
	}
	stack := make([]frame, 0, MaxDepth)
	if ptr, ok := root.Vectorlike(); ok && ptr != 0 {
		stack = append(stack, frame{win: abi.Window(ptr), depth: 0})
	}

	truncated := false
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.depth >= MaxDepth {
			if !truncated {
				log.Printf("wintree: window tree exceeds depth %d, truncating", MaxDepth)
				truncated = true
			}
			continue
		}

		contents := abi.WindowContents(cur.win)
		if abi.IsPseudovector(contents, abi.Offsets().PvecTypeBuffer) {
			visit(cur.win)
		} else if childPtr, ok := contents.Vectorlike(); ok && childPtr != 0 {
			// Internal node: push every sibling reachable through `next`.
			child := abi.Window(childPtr)
			for child != 0 {
				stack = append(stack, frame{win: child, depth: cur.depth + 1})
				next := abi.WindowNext(child)
				nextPtr, ok := next.Vectorlike()
				if !ok || nextPtr == 0 {
					break
				}
				child = abi.Window(nextPtr)
			}
		}
	}
}

// Count returns the number of leaf windows in frame's tree.
func Count(frame abi.Frame) int {
	n := 0
	Walk(frame, func(abi.Window) { n++ })
	return n
}

// Collect returns every leaf window in frame's tree, in the order Walk
// visits them.
func Collect(frame abi.Frame) []abi.Window {
	var ws []abi.Window
	Walk(frame, func(w abi.Window) { ws = append(ws, w) })
	return ws
}
