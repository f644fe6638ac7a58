// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "testing"

func TestRectangleSize(t *testing.T) {
	r := Rectangle{Min: Point{X: 1, Y: 2}, Max: Point{X: 5, Y: 9}}
	if got := r.Dx(); got != 4 {
		t.Errorf("Dx() = %v, want 4", got)
	}
	if got := r.Dy(); got != 7 {
		t.Errorf("Dy() = %v, want 7", got)
	}
	if got, want := r.Size(), (Point{X: 4, Y: 7}); got != want {
		t.Errorf("Size() = %v, want %v", got, want)
	}
}

func TestRectangleCanon(t *testing.T) {
	r := Rectangle{Min: Point{X: 5, Y: 5}, Max: Point{X: 1, Y: 1}}
	c := r.Canon()
	if c.Empty() {
		t.Errorf("Canon() produced an empty rectangle: %v", c)
	}
	if c.Min.X > c.Max.X || c.Min.Y > c.Max.Y {
		t.Errorf("Canon() did not order Min/Max: %v", c)
	}
}

func TestRectangleIntersectUnion(t *testing.T) {
	a := Rectangle{Min: Point{X: 0, Y: 0}, Max: Point{X: 10, Y: 10}}
	b := Rectangle{Min: Point{X: 5, Y: 5}, Max: Point{X: 15, Y: 15}}

	i := a.Intersect(b)
	if want := (Rectangle{Min: Point{X: 5, Y: 5}, Max: Point{X: 10, Y: 10}}); i != want {
		t.Errorf("Intersect() = %v, want %v", i, want)
	}

	u := a.Union(b)
	if want := (Rectangle{Min: Point{X: 0, Y: 0}, Max: Point{X: 15, Y: 15}}); u != want {
		t.Errorf("Union() = %v, want %v", u, want)
	}
}

func TestPointAddSub(t *testing.T) {
	p := Point{X: 1, Y: 2}
	q := Point{X: 3, Y: 4}
	if got, want := p.Add(q), (Point{X: 4, Y: 6}); got != want {
		t.Errorf("Add() = %v, want %v", got, want)
	}
	if got, want := q.Sub(p), (Point{X: 2, Y: 2}); got != want {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
}

func TestRectangleEmpty(t *testing.T) {
	r := Rectangle{Min: Point{X: 0, Y: 0}, Max: Point{X: 0, Y: 10}}
	if !r.Empty() {
		t.Errorf("zero-width rectangle should be empty: %v", r)
	}
}
