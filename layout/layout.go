// Package layout implements the monospace grid layout engine: it walks a
// frame's window tree, reads each window's buffer text, and appends
// background, glyph, stretch, and cursor entries into a Frame Glyph Buffer.
//
// Buffer, window-start, and point positions here are treated as the same
// 1-based addressing space the gap-buffer reader uses (byte offsets per the
// multibyte/unibyte text-region rules); there is no separate character-index
// space layered on top.
package layout

import (
	"log"

	"neomacs.dev/display/charutil"
	"neomacs.dev/display/glyph"
	"neomacs.dev/display/internal/abi"
	"neomacs.dev/display/internal/gapbuffer"
	"neomacs.dev/display/internal/wintree"
)

// WindowParams is the flat, per-window value record the host projects once
// per frame. It is never mutated after being read.
type WindowParams struct {
	WindowID, BufferID int64
	Bounds, TextBounds glyph.Rect
	Selected           bool
	WindowStart, Point int64
	BufferSize         int64
	BufferBegv         int64
	HScroll            int
	TruncateLines      bool
	TabWidth           int
	DefaultFG, DefaultBG glyph.Color
	CharWidth, CharHeight float32
	FontPixelSize, FontAscent float32
	ModeLineHeight, HeaderLineHeight, TabLineHeight float32
	CursorType     uint8
	CursorBarWidth float32

	// Buffer and Multibyte are not part of the host's value record but are
	// needed to address its text region; the host supplies them alongside
	// the rest of WindowParams for the one buffer pointer a window's
	// content layout actually touches.
	Buffer    abi.Buffer
	Multibyte bool
}

// Host is the editor runtime's side of the layout contract: it projects a
// window's parameters for the current frame and accepts the layout
// engine's writeback once a window has been laid out.
type Host interface {
	WindowParams(win abi.Window) (WindowParams, bool)
	SetWindowEnd(win abi.Window, endCharpos int64, lastRow int)
}

// Engine lays out one frame at a time, reusing its scratch text buffer
// across frames so steady-state layout never allocates.
type Engine struct {
	textBuf []byte
}

func NewEngine() *Engine {
	return &Engine{textBuf: make([]byte, 0, 64*1024)}
}

// LayoutFrame sets out's frame-level fields, walks frame's leaf windows,
// and appends every background, info, glyph, stretch, and cursor entry for
// the frame. out is reset first so callers can reuse one buffer forever.
func (e *Engine) LayoutFrame(host Host, frame abi.Frame, width, height, charWidth, charHeight, fontPixelSize float32, background glyph.Color, out *glyph.FrameGlyphBuffer) {
	out.Reset()
	out.Width, out.Height = width, height
	out.CharWidth, out.CharHeight = charWidth, charHeight
	out.FontPixelSize = fontPixelSize
	out.Background = background

	for _, win := range wintree.Collect(frame) {
		wp, ok := host.WindowParams(win)
		if !ok {
			continue
		}
		out.AddBackground(wp.Bounds, wp.DefaultBG)
		out.AddWindowInfo(glyph.WindowInfo{
			WindowID:       wp.WindowID,
			BufferID:       wp.BufferID,
			WindowStart:    wp.WindowStart,
			Bounds:         wp.Bounds,
			ModeLineHeight: wp.ModeLineHeight,
			Selected:       wp.Selected,
		})
		e.layoutWindow(host, win, wp, out)
	}
}

func cursorRectFor(wp WindowParams, col, row int, fullCell bool) (glyph.Rect, uint8) {
	x := wp.TextBounds.X + float32(col)*wp.CharWidth
	y := wp.TextBounds.Y + wp.HeaderLineHeight + wp.TabLineHeight + float32(row)*wp.CharHeight
	w, h := wp.CharWidth, wp.CharHeight
	if !fullCell {
		switch wp.CursorType {
		case glyph.CursorBar:
			w = wp.CursorBarWidth
			if w < 1 {
				w = 1
			}
		case glyph.CursorHBar:
			h = 2
		}
	}
	style := wp.CursorType
	if !wp.Selected {
		style = glyph.CursorHollow
	}
	return glyph.Rect{X: x, Y: y, Width: w, Height: h}, style
}

func placeCursor(out *glyph.FrameGlyphBuffer, wp WindowParams, r glyph.Rect, style uint8) {
	out.AddCursor(int32(wp.WindowID), r, style, wp.DefaultFG)
	if style == glyph.CursorBox {
		out.SetCursorInverse(r, wp.DefaultFG, wp.DefaultBG)
	}
}

func (e *Engine) layoutWindow(host Host, win abi.Window, wp WindowParams, out *glyph.FrameGlyphBuffer) {
	if wp.Buffer == 0 {
		return
	}

	textX := wp.TextBounds.X
	textY := wp.TextBounds.Y + wp.HeaderLineHeight + wp.TabLineHeight
	textWidth := wp.TextBounds.Width
	textHeight := wp.TextBounds.Height - wp.HeaderLineHeight - wp.TabLineHeight - wp.ModeLineHeight
	charW, charH, ascent := wp.CharWidth, wp.CharHeight, wp.FontAscent

	if charW <= 0 || charH <= 0 {
		return
	}
	cols := int(textWidth / charW)
	maxRows := int(textHeight / charH)
	if cols <= 0 || maxRows <= 0 {
		return
	}

	readChars := wp.BufferSize - wp.WindowStart + 1
	if budget := int64(cols * maxRows * 2); readChars > budget {
		readChars = budget
	}

	var bytesRead int
	if readChars > 0 {
		desc := abi.ReadTextDescriptor(wp.Buffer, wp.Multibyte)
		if desc.Beg == 0 {
			log.Printf("layout: window %d: buffer has no text region, laying out background only", wp.WindowID)
		} else {
			need := int(readChars) * 4
			if cap(e.textBuf) < need {
				e.textBuf = make([]byte, 0, need)
			}
			byteTo := wp.WindowStart + readChars
			if max := wp.BufferSize + 1; byteTo > max {
				byteTo = max
			}
			e.textBuf = gapbuffer.CopyText(desc, wp.WindowStart, byteTo, e.textBuf[:0])
			bytesRead = len(e.textBuf)
		}
	}

	out.SetFace(0, wp.DefaultFG, &wp.DefaultBG)

	col, row := 0, 0
	charpos := wp.WindowStart
	cursorPlaced := false
	windowEndCharpos := wp.WindowStart
	byteIdx := 0

charLoop:
	for byteIdx < bytesRead && row < maxRows {
		colBefore, rowBefore := col, row
		posBefore := charpos

		ch, size := charutil.DecodeUTF8(e.textBuf[byteIdx:])
		byteIdx += size
		charpos++

		switch {
		case ch == '\n':
			if remaining := cols - col; remaining > 0 {
				out.AddStretch(glyph.Rect{X: textX + float32(col)*charW, Y: textY + float32(row)*charH, Width: float32(remaining) * charW, Height: charH}, wp.DefaultBG, 0)
			}
			col, row = 0, row+1

		case ch == '\t':
			tabWidth := wp.TabWidth
			if tabWidth < 1 {
				tabWidth = 1
			}
			nextTab := ((col / tabWidth) + 1) * tabWidth
			if nextTab > cols {
				nextTab = cols
			}
			spaces := nextTab - col
			if spaces > 0 {
				out.AddStretch(glyph.Rect{X: textX + float32(col)*charW, Y: textY + float32(row)*charH, Width: float32(spaces) * charW, Height: charH}, wp.DefaultBG, 0)
			}
			col += spaces
			if col >= cols {
				if wp.TruncateLines {
					byteIdx, charpos = skipToNextLine(e.textBuf, byteIdx, charpos, bytesRead)
				}
				col, row = 0, row+1
			}

		case ch == '\r':
			// no-op

		case ch < 0x20:
			if col+2 <= cols {
				out.AddGlyph('^', glyph.Rect{X: textX + float32(col)*charW, Y: textY + float32(row)*charH, Width: charW, Height: charH}, ascent)
				out.AddGlyph(ch+0x40, glyph.Rect{X: textX + float32(col+1)*charW, Y: textY + float32(row)*charH, Width: charW, Height: charH}, ascent)
				col += 2
			} else {
				if wp.TruncateLines {
					byteIdx, charpos = skipToNextLine(e.textBuf, byteIdx, charpos, bytesRead)
					col, row = 0, row+1
				} else {
					if remaining := cols - col; remaining > 0 {
						out.AddStretch(glyph.Rect{X: textX + float32(col)*charW, Y: textY + float32(row)*charH, Width: float32(remaining) * charW, Height: charH}, wp.DefaultBG, 0)
					}
					col, row = 0, row+1
				}
			}

		default:
			charCols := 1
			if charutil.IsWideChar(ch) {
				charCols = 2
			}
			if col+charCols > cols {
				if wp.TruncateLines {
					byteIdx, charpos = skipToNextLine(e.textBuf, byteIdx, charpos, bytesRead)
					windowEndCharpos = charpos
					col, row = 0, row+1
					continue
				}
				if remaining := cols - col; remaining > 0 {
					out.AddStretch(glyph.Rect{X: textX + float32(col)*charW, Y: textY + float32(row)*charH, Width: float32(remaining) * charW, Height: charH}, wp.DefaultBG, 0)
				}
				col, row = 0, row+1
				if row >= maxRows {
					windowEndCharpos = charpos
					break charLoop
				}
				if charCols > cols {
					// Pathologically narrow window: even a fresh row can't
					// fit this character. Drop it rather than spin forever.
					windowEndCharpos = charpos
					continue
				}
				// The character that triggered the wrap is still pending;
				// retry it on the fresh row rather than dropping it.
				byteIdx -= size
				charpos--
				continue
			}
			out.AddGlyph(ch, glyph.Rect{X: textX + float32(col)*charW, Y: textY + float32(row)*charH, Width: float32(charCols) * charW, Height: charH}, ascent)
			col += charCols
		}

		// The cursor is emitted after this char's own entries so it
		// composites on top of whatever sits in its cell, using the cell
		// position this char started at rather than wherever col/row ended
		// up (which may have already advanced to the next row).
		if !cursorPlaced && posBefore >= wp.Point {
			r, style := cursorRectFor(wp, colBefore, rowBefore, false)
			placeCursor(out, wp, r, style)
			cursorPlaced = true
		}

		windowEndCharpos = charpos
	}

	if !cursorPlaced && wp.Point >= wp.WindowStart {
		lastRow := row
		if lastRow >= maxRows {
			lastRow = maxRows - 1
		}
		r, style := cursorRectFor(wp, col, lastRow, true)
		placeCursor(out, wp, r, style)
	}

	// A truly empty window has produced no content at all, so the whole
	// text area (including row 0) is still blank; otherwise row 0 onward
	// through the final row the walk reached already carries content or a
	// fill from the loop above, and only the rows past it need filling.
	filledRows := 0
	if bytesRead > 0 {
		filledRows = row + 1
	}
	if filledRows < maxRows {
		fillHeight := textHeight - float32(filledRows)*charH
		if fillHeight > 0 {
			out.AddStretch(glyph.Rect{X: textX, Y: textY + float32(filledRows)*charH, Width: textWidth, Height: fillHeight}, wp.DefaultBG, 0)
		}
	}

	lastRow := row
	if lastRow >= maxRows {
		lastRow = maxRows - 1
	}
	host.SetWindowEnd(win, windowEndCharpos, lastRow)
}

// skipToNextLine advances past the remainder of the current logical line,
// consuming the terminating newline too, and returns the updated byte index
// and character position.
func skipToNextLine(buf []byte, byteIdx int, charpos int64, bytesRead int) (int, int64) {
	for byteIdx < bytesRead {
		ch, size := charutil.DecodeUTF8(buf[byteIdx:])
		byteIdx += size
		charpos++
		if ch == '\n' {
			break
		}
	}
	return byteIdx, charpos
}
