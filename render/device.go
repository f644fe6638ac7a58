// Package render implements the render thread's side of the system: a GPU
// device abstraction, per-window surfaces, a channel-driven render loop, and
// the multi-window manager that routes Frame Glyph Buffers to the right
// surface. It runs on a dedicated OS thread; only this package ever touches
// window or surface state.
package render

import (
	"errors"
	"image"
)

// Device is the GPU backend abstraction the render loop draws through. A
// concrete implementation binds to a specific API (OpenGL, Metal, Direct3D,
// Vulkan via a cgo shim, etc.); none is provided here since the render
// thread's job is sequencing draw calls, not owning a graphics context.
type Device interface {
	// BeginFrame prepares target for drawing and returns the framebuffer to
	// render into. clear requests the framebuffer be cleared first.
	BeginFrame(target RenderTarget, clear bool, viewport image.Point) (Framebuffer, error)
	EndFrame() error

	Caps() Caps

	NewTexture(format TextureFormat, width, height int, filter TextureFilter) (Texture, error)
	NewFramebuffer(tex Texture) (Framebuffer, error)
	NewBuffer(typ BufferBinding, size int) (Buffer, error)

	Clear(r, g, b, a float32)
	Viewport(x, y, width, height int)
	DrawArrays(mode DrawMode, off, count int)

	BindFramebuffer(f Framebuffer)
	BindTexture(unit int, t Texture)
	BindVertexBuffer(b Buffer, stride, offset int)

	Release()
}

// RenderTarget is an opaque per-platform render destination (an OS window's
// backing framebuffer, a surface texture, etc.); a Device type-switches on
// the concrete type it expects.
type RenderTarget interface {
	implementsRenderTarget()
}

// Caps describes what a Device supports, so the renderer can fall back
// gracefully (e.g. skip blur when compute is unavailable).
type Caps struct {
	BottomLeftOrigin bool
	Features         Features
	MaxTextureSize   int
}

func (f Features) Has(feats Features) bool { return f&feats == feats }

type Features uint

const (
	FeatureTimers Features = 1 << iota
	FeatureFloatRenderTargets
	FeatureCompute
	FeatureSRGB
)

type TextureFormat uint8

const (
	TextureFormatSRGBA TextureFormat = iota
	TextureFormatRGBA8
	TextureFormatFloat
)

// IsSRGB reports whether a format stores sRGB-encoded color, used when
// picking a surface format per the sRGB-preference rule.
func (f TextureFormat) IsSRGB() bool { return f == TextureFormatSRGBA }

type TextureFilter uint8

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

type BufferBinding uint8

const (
	BufferBindingVertices BufferBinding = 1 << iota
	BufferBindingIndices
	BufferBindingUniforms
)

type DrawMode uint8

const (
	DrawModeTriangles DrawMode = iota
	DrawModeTriangleStrip
)

type Texture interface {
	Upload(offset, size image.Point, pixels []byte, stride int)
	Release()
}

type Framebuffer interface {
	Invalidate()
	ReadPixels(src image.Rectangle, pixels []byte) error
	Release()
}

type Buffer interface {
	Upload(data []byte)
	Release()
}

var ErrSurfaceLost = errors.New("render: surface content lost, reconfigure required")
