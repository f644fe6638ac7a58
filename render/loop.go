package render

import (
	"image"
	"runtime"

	"neomacs.dev/display/glyph"
)

// Renderer turns one frame's glyph buffer into GPU draw calls against dev,
// which is already mid-frame (BeginFrame has been called). Font
// rasterization, glyph-atlas lookups, and shader selection are its
// responsibility and live outside this package.
type Renderer interface {
	DrawFrame(dev Device, target RenderTarget, frame *glyph.FrameGlyphBuffer) error
}

type frameRequest struct {
	target   RenderTarget
	viewport image.Point
	glyphs   *glyph.FrameGlyphBuffer
}

type frameResult struct {
	err error
}

// Loop is the render thread's event loop: a single goroutine, pinned to one
// OS thread (most GPU APIs require the context stay on the thread that
// created it), that serializes BeginFrame/draw/EndFrame calls so no two
// frames race on the same Device. It does not call Present.
type Loop struct {
	dev      Device
	renderer Renderer

	drawing bool
	err     error

	frames  chan frameRequest
	results chan frameResult
	ack     chan struct{}
	stop    chan struct{}
	stopped chan struct{}
}

// NewLoop starts the render thread and blocks until it is ready to accept
// frames.
func NewLoop(dev Device, renderer Renderer) *Loop {
	l := &Loop{
		dev:      dev,
		renderer: renderer,
		frames:   make(chan frameRequest),
		results:  make(chan frameResult),
		ack:      make(chan struct{}, 1),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	ready := make(chan struct{})
	go l.run(ready)
	<-ready
	return l
}

func (l *Loop) run(ready chan struct{}) {
	defer close(l.stopped)
	runtime.LockOSThread()
	// Intentionally never unlocked: the thread is reserved for this
	// Device's lifetime and the Go runtime must not hand it to anything
	// else afterward.
	close(ready)

	for {
		select {
		case req := <-l.frames:
			res := frameResult{}
			fb, err := l.dev.BeginFrame(req.target, true, req.viewport)
			if err != nil {
				res.err = err
				l.ack <- struct{}{}
				l.results <- res
				continue
			}
			l.dev.BindFramebuffer(fb)
			res.err = l.renderer.DrawFrame(l.dev, req.target, req.glyphs)
			l.ack <- struct{}{}
			if res.err == nil {
				res.err = l.dev.EndFrame()
			}
			l.results <- res
		case <-l.stop:
			return
		}
	}
}

// Release stops the loop and releases the device. Blocks until the thread
// has exited.
func (l *Loop) Release() {
	l.Flush()
	close(l.stop)
	<-l.stopped
	l.dev.Release()
}

func (l *Loop) Flush() error {
	if l.drawing {
		res := <-l.results
		l.setErr(res.err)
		l.drawing = false
	}
	return l.err
}

// Draw submits frame for rendering against target at viewport size. It
// returns the loop's shared acknowledgement channel, which receives a value
// once the loop is done reading frame (the caller may then reuse or mutate
// it); the channel is never closed.
func (l *Loop) Draw(target RenderTarget, viewport image.Point, frame *glyph.FrameGlyphBuffer) <-chan struct{} {
	if l.err != nil {
		l.ack <- struct{}{}
		return l.ack
	}
	l.Flush()
	l.frames <- frameRequest{target: target, viewport: viewport, glyphs: frame}
	l.drawing = true
	return l.ack
}

func (l *Loop) setErr(err error) {
	if l.err == nil {
		l.err = err
	}
}
