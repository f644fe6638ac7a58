// Package glyph defines the Frame Glyph Buffer: the contract between the
// layout engine and the render thread. It also carries the small geometry
// and color types that contract is built from.
package glyph

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

func NewColor(r, g, b, a float32) Color { return Color{r, g, b, a} }
func RGB(r, g, b float32) Color         { return Color{r, g, b, 1} }

func ColorFromU8(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// ColorFromPixel converts a host pixel value (0xAARRGGBB or 0x00RRGGBB) to
// a Color. A zero alpha byte is treated as fully opaque, since the host
// encodes plain 24-bit colors with a zero high byte.
func ColorFromPixel(pixel uint32) Color {
	a := uint8(pixel >> 24)
	r := uint8(pixel >> 16)
	g := uint8(pixel >> 8)
	b := uint8(pixel)
	if a == 0 {
		a = 255
	}
	return ColorFromU8(r, g, b, a)
}

var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = Color{0, 0, 0, 0}
)

// Point is a 2D point in logical pixels.
type Point struct{ X, Y float32 }

// Size is a 2D size in logical pixels.
type Size struct{ Width, Height float32 }

// Rect is an axis-aligned rectangle given by origin and size, matching the
// host's own window/frame geometry representation (as opposed to a
// min/max corner pair).
type Rect struct {
	X, Y, Width, Height float32
}

func RectFromPointSize(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

func (r Rect) Origin() Point { return Point{r.X, r.Y} }
func (r Rect) Size() Size    { return Size{r.Width, r.Height} }
func (r Rect) Right() float32  { return r.X + r.Width }
func (r Rect) Bottom() float32 { return r.Y + r.Height }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Transform is a 2D affine transform: [a b; c d] plus a translation
// (tx, ty), applied as
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
type Transform struct {
	A, B, C, D, TX, TY float32
}

var Identity = Transform{A: 1, D: 1}

func Translate(tx, ty float32) Transform { return Transform{A: 1, D: 1, TX: tx, TY: ty} }
func Scale(sx, sy float32) Transform     { return Transform{A: sx, D: sy} }

func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.TX,
		Y: t.B*p.X + t.D*p.Y + t.TY,
	}
}
