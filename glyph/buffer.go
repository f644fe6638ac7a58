package glyph

// EntryKind discriminates the typed draw entries appended to a
// FrameGlyphBuffer. Renderer draw order follows entry order exactly.
type EntryKind uint8

const (
	EntryBackground EntryKind = iota
	EntryStretch
	EntryGlyph
	EntryCursor
	EntryCursorInverse
	EntryFace
)

// Cursor styles, matching the host's own encoding.
const (
	CursorBox    uint8 = 0
	CursorBar    uint8 = 1
	CursorHBar   uint8 = 2
	CursorHollow uint8 = 3
)

// Entry is one draw instruction. Only the fields relevant to Kind are
// meaningful; the struct is a flat union rather than an interface so a
// FrameGlyphBuffer's entry slice never allocates per entry.
type Entry struct {
	Kind EntryKind
	Rect Rect

	// background, stretch, glyph
	Color Color
	Face  int

	// glyph
	Char   rune
	Ascent float32

	// cursor
	WindowID    int32
	CursorStyle uint8

	// cursor_inverse
	CursorBG Color
	CursorFG Color
}

// WindowInfo is a per-window summary recorded alongside the frame's draw
// entries, used by the render side to detect buffer switches and route
// child-frame overlays.
type WindowInfo struct {
	WindowID       int64
	BufferID       int64
	WindowStart    int64
	Bounds         Rect
	ModeLineHeight float32
	Selected       bool
}

// FrameGlyphBuffer is the contract between the layout engine and the
// render thread: everything the renderer needs to draw one frame. It is
// filled once per frame and consumed once per frame; callers own reuse
// across frames via Reset.
type FrameGlyphBuffer struct {
	// FrameID is the host frame this buffer belongs to; 0 means the
	// primary window. ParentID is non-zero for child-frame overlays.
	FrameID  int64
	ParentID int64

	Width, Height         float32
	CharWidth, CharHeight float32
	FontPixelSize         float32
	Background            Color

	Entries []Entry
	Windows []WindowInfo
}

// Reset clears a FrameGlyphBuffer for reuse without releasing its backing
// arrays, so a frame-by-frame layout loop never allocates once warmed up.
func (f *FrameGlyphBuffer) Reset() {
	f.Entries = f.Entries[:0]
	f.Windows = f.Windows[:0]
}

func (f *FrameGlyphBuffer) AddBackground(r Rect, color Color) {
	f.Entries = append(f.Entries, Entry{Kind: EntryBackground, Rect: r, Color: color})
}

func (f *FrameGlyphBuffer) AddStretch(r Rect, color Color, face int) {
	f.Entries = append(f.Entries, Entry{Kind: EntryStretch, Rect: r, Color: color, Face: face})
}

func (f *FrameGlyphBuffer) AddGlyph(ch rune, r Rect, ascent float32) {
	f.Entries = append(f.Entries, Entry{Kind: EntryGlyph, Char: ch, Rect: r, Ascent: ascent})
}

func (f *FrameGlyphBuffer) AddCursor(windowID int32, r Rect, style uint8, color Color) {
	f.Entries = append(f.Entries, Entry{Kind: EntryCursor, WindowID: windowID, Rect: r, CursorStyle: style, Color: color})
}

// SetCursorInverse appends the inverse-cursor entry for a filled box
// cursor, so the renderer can draw glyphs underneath it in the swapped
// foreground/background colors. It must immediately follow the cursor
// entry it belongs to.
func (f *FrameGlyphBuffer) SetCursorInverse(r Rect, cursorBG, cursorFG Color) {
	f.Entries = append(f.Entries, Entry{Kind: EntryCursorInverse, Rect: r, CursorBG: cursorBG, CursorFG: cursorFG})
}

// SetFace appends a face-context entry; later glyph entries are drawn
// with whatever face context precedes them.
func (f *FrameGlyphBuffer) SetFace(face int, fg Color, bg *Color) {
	e := Entry{Kind: EntryFace, Face: face, Color: fg}
	if bg != nil {
		e.CursorBG = *bg
	}
	f.Entries = append(f.Entries, e)
}

func (f *FrameGlyphBuffer) AddWindowInfo(info WindowInfo) {
	f.Windows = append(f.Windows, info)
}
