package render

import (
	"fmt"
	"log"

	"golang.org/x/exp/maps"

	"neomacs.dev/display/f32"
	"neomacs.dev/display/glyph"
	"neomacs.dev/display/unit"
)

// WindowState is one OS window's render-side state: its surface, its most
// recent root frame, and any child frames rendered as overlays on top of it.
type WindowState struct {
	FrameID int64

	// OSWindowID identifies the underlying platform window. Resize/close
	// events arrive from the event loop keyed by this id, not FrameID, so
	// the manager keeps a reverse mapping back to the owning frame.
	OSWindowID uintptr

	Surface       Surface
	SurfaceConfig SurfaceConfig

	Width, Height int
	ScaleFactor   float32

	CurrentFrame *glyph.FrameGlyphBuffer
	ChildFrames  map[int64]*glyph.FrameGlyphBuffer

	FrameDirty bool
	Title      string
}

// Px implements unit.Converter, so logical (dp) window sizes from a
// creation request can be converted to this window's physical pixels.
func (w *WindowState) Px(v unit.Value) int {
	switch v.U {
	case unit.UnitPx:
		return int(v.V)
	default:
		return int(v.V * w.ScaleFactor)
	}
}

// Bounds returns the window's viewport rectangle in physical pixels, origin
// at (0, 0), for the render pass to clip and position draws against.
func (w *WindowState) Bounds() f32.Rectangle {
	return f32.Rectangle{Max: f32.Point{X: float32(w.Width), Y: float32(w.Height)}}
}

// PendingWindow is a queued OS-window creation request; width/height are
// logical (dp) sizes, converted to physical pixels once the window exists
// and its scale factor is known.
type PendingWindow struct {
	FrameID int64
	Width   unit.Value
	Height  unit.Value
	Title   string
}

// WindowFactory creates the OS window and its bound GPU surface for a
// pending request. A real implementation opens a platform window during an
// event-loop callback (the only place that capability is available) and
// binds a Surface to it; this package only sequences the call.
type WindowFactory interface {
	CreateWindow(req PendingWindow) (surface Surface, osWindowID uintptr, widthPx, heightPx int, scaleFactor float32, err error)
}

// MultiWindowManager owns every secondary OS window, routing frames to the
// one that should render them and queuing creation/destruction until a
// window-capable callback can execute them. Only the render thread may call
// any of its methods.
type MultiWindowManager struct {
	windows map[int64]*WindowState

	// osWindowIDs is the reverse of windows: it lets an event-loop callback
	// that only knows the platform window id look up which frame owns it.
	osWindowIDs map[uintptr]int64

	pendingCreates  []PendingWindow
	pendingDestroys []int64
}

func NewMultiWindowManager() *MultiWindowManager {
	return &MultiWindowManager{
		windows:     make(map[int64]*WindowState),
		osWindowIDs: make(map[uintptr]int64),
	}
}

// RequestCreate queues a window creation; it cannot execute immediately
// because OS-window creation requires an event-loop capability held only
// during specific callbacks.
func (m *MultiWindowManager) RequestCreate(frameID int64, width, height unit.Value, title string) {
	m.pendingCreates = append(m.pendingCreates, PendingWindow{FrameID: frameID, Width: width, Height: height, Title: title})
}

// RequestDestroy queues a window destruction.
func (m *MultiWindowManager) RequestDestroy(frameID int64) {
	m.pendingDestroys = append(m.pendingDestroys, frameID)
}

// ProcessCreates executes every queued creation via factory, which must
// only be called when the event-loop capability is available. Each new
// surface is configured per the per-window invariants: the first sRGB
// format from its capabilities (else the first available), pre-multiplied
// alpha if supported, FIFO present mode, and a 2-frame max latency.
func (m *MultiWindowManager) ProcessCreates(factory WindowFactory) {
	pending := m.pendingCreates
	m.pendingCreates = nil
	for _, req := range pending {
		if _, exists := m.windows[req.FrameID]; exists {
			log.Printf("render: window for frame %d already exists, skipping create", req.FrameID)
			continue
		}
		surface, osWindowID, widthPx, heightPx, scale, err := factory.CreateWindow(req)
		if err != nil {
			log.Printf("render: failed to create window for frame %d: %v", req.FrameID, err)
			continue
		}
		cfg := DefaultSurfaceConfig(surface.Capabilities(), widthPx, heightPx)
		if err := surface.Configure(cfg); err != nil {
			log.Printf("render: failed to configure surface for frame %d: %v", req.FrameID, err)
			surface.Release()
			continue
		}
		m.windows[req.FrameID] = &WindowState{
			FrameID:       req.FrameID,
			OSWindowID:    osWindowID,
			Surface:       surface,
			SurfaceConfig: cfg,
			Width:         widthPx,
			Height:        heightPx,
			ScaleFactor:   scale,
			ChildFrames:   make(map[int64]*glyph.FrameGlyphBuffer),
			Title:         req.Title,
		}
		m.osWindowIDs[osWindowID] = req.FrameID
	}
}

// ProcessDestroys executes every queued destruction; dropping a window's
// surface and OS window implicitly releases its GPU resources.
func (m *MultiWindowManager) ProcessDestroys() {
	pending := m.pendingDestroys
	m.pendingDestroys = nil
	for _, frameID := range pending {
		ws, ok := m.windows[frameID]
		if !ok {
			continue
		}
		ws.Surface.Release()
		delete(m.windows, frameID)
		delete(m.osWindowIDs, ws.OSWindowID)
	}
}

// RouteFrame dispatches frame to the window it belongs to. frameID == 0
// targets the primary window, which this manager does not own; the caller
// handles it and RouteFrame reports false. If the frame has a non-zero
// parent it is a child-frame overlay, installed under its owning primary
// window's child-frame map. Otherwise the frame is the root frame for its
// own secondary window.
func (m *MultiWindowManager) RouteFrame(frame *glyph.FrameGlyphBuffer) bool {
	if frame.FrameID == 0 {
		return false
	}
	if frame.ParentID != 0 {
		for _, ws := range m.windows {
			if ws.FrameID == frame.ParentID {
				ws.ChildFrames[frame.FrameID] = frame
				ws.FrameDirty = true
				return true
			}
		}
		return false
	}
	ws, ok := m.windows[frame.FrameID]
	if !ok {
		return false
	}
	ws.CurrentFrame = frame
	ws.FrameDirty = true
	return true
}

// HandleResize updates and reconfigures a window's surface. A surface is
// never reconfigured to zero dimensions.
func (m *MultiWindowManager) HandleResize(frameID int64, widthPx, heightPx int) error {
	ws, ok := m.windows[frameID]
	if !ok {
		return fmt.Errorf("render: no window for frame %d", frameID)
	}
	if widthPx == 0 || heightPx == 0 {
		return nil
	}
	ws.Width, ws.Height = widthPx, heightPx
	ws.SurfaceConfig.Width, ws.SurfaceConfig.Height = widthPx, heightPx
	if err := ws.Surface.Configure(ws.SurfaceConfig); err != nil {
		return err
	}
	ws.FrameDirty = true
	return nil
}

// AnyDirty reports whether any window needs a redraw.
func (m *MultiWindowManager) AnyDirty() bool {
	for _, ws := range m.windows {
		if ws.FrameDirty {
			return true
		}
	}
	return false
}

// DirtyWindows returns the frame IDs of every window needing a redraw.
func (m *MultiWindowManager) DirtyWindows() []int64 {
	var dirty []int64
	for id, ws := range m.windows {
		if ws.FrameDirty {
			dirty = append(dirty, id)
		}
	}
	return dirty
}

// Get returns the window state for frameID, if any.
func (m *MultiWindowManager) Get(frameID int64) (*WindowState, bool) {
	ws, ok := m.windows[frameID]
	return ws, ok
}

// FrameForWindow is the reverse lookup: given the platform window id an
// event-loop callback observed (a resize or close event), it finds the
// frame that owns it.
func (m *MultiWindowManager) FrameForWindow(osWindowID uintptr) (int64, bool) {
	frameID, ok := m.osWindowIDs[osWindowID]
	return frameID, ok
}

// ClearDirty marks a window's frame as rendered, clearing its dirty flag. A
// window's dirty flag is only ever cleared by a completed render pass for
// that window.
func (m *MultiWindowManager) ClearDirty(frameID int64) {
	if ws, ok := m.windows[frameID]; ok {
		ws.FrameDirty = false
	}
}

// Count returns the number of secondary windows currently managed.
func (m *MultiWindowManager) Count() int { return len(m.windows) }

// FrameIDs returns every managed window's frame ID, in no particular order.
func (m *MultiWindowManager) FrameIDs() []int64 {
	return maps.Keys(m.windows)
}
