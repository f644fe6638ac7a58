package render

// PresentMode selects how a surface hands finished frames to the display.
type PresentMode uint8

const (
	// PresentModeFIFO vsyncs and never drops or tears; every window uses it.
	PresentModeFIFO PresentMode = iota
	PresentModeMailbox
	PresentModeImmediate
)

// AlphaMode selects how a surface's alpha channel composites with what's
// behind it.
type AlphaMode uint8

const (
	AlphaModeOpaque AlphaMode = iota
	AlphaModePreMultiplied
	AlphaModePostMultiplied
)

// SurfaceCapabilities is what Surface.Capabilities reports before
// configuration, so the caller can pick a format and alpha mode.
type SurfaceCapabilities struct {
	Formats    []TextureFormat
	AlphaModes []AlphaMode
}

// ChooseFormat returns the first sRGB-capable format, or the first
// available format if none is sRGB. caps.Formats must be non-empty.
func ChooseFormat(caps SurfaceCapabilities) TextureFormat {
	for _, f := range caps.Formats {
		if f.IsSRGB() {
			return f
		}
	}
	return caps.Formats[0]
}

// ChooseAlphaMode prefers pre-multiplied alpha compositing (what a
// transparent-background window needs), falling back to the first
// supported mode. caps.AlphaModes must be non-empty.
func ChooseAlphaMode(caps SurfaceCapabilities) AlphaMode {
	for _, m := range caps.AlphaModes {
		if m == AlphaModePreMultiplied {
			return m
		}
	}
	return caps.AlphaModes[0]
}

// SurfaceConfig is the configuration a Surface is (re)configured with.
type SurfaceConfig struct {
	Format          TextureFormat
	Width, Height   int
	PresentMode     PresentMode
	AlphaMode       AlphaMode
	MaxFrameLatency int
}

// DefaultSurfaceConfig builds a config for a width/height using caps,
// matching the invariants every window's surface must satisfy: FIFO
// present mode and a 2-frame max latency.
func DefaultSurfaceConfig(caps SurfaceCapabilities, width, height int) SurfaceConfig {
	return SurfaceConfig{
		Format:          ChooseFormat(caps),
		Width:           width,
		Height:          height,
		PresentMode:     PresentModeFIFO,
		AlphaMode:       ChooseAlphaMode(caps),
		MaxFrameLatency: 2,
	}
}

// Surface is a GPU presentation target bound to one OS window.
type Surface interface {
	Capabilities() SurfaceCapabilities
	// Configure applies cfg. A surface is never configured to zero
	// dimensions; implementations may assume callers already checked that.
	Configure(cfg SurfaceConfig) error
	Acquire() (RenderTarget, error)
	Present() error
	Release()
}
