package render

import (
	"context"
	"image"

	pool "github.com/jolestar/go-commons-pool/v2"
)

// snapshotPool reuses *image.RGBA buffers for transition snapshot capture,
// so starting a buffer-switch transition doesn't allocate a full framebuffer
// image every time: capture happens once per transition, but transitions
// can fire in quick succession (rapid buffer switching) and the image is
// only needed until the GPU upload that follows.
type snapshotPool struct {
	p *pool.ObjectPool
}

func newSnapshotPool(width, height int) *snapshotPool {
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return image.NewRGBA(image.Rect(0, 0, width, height)), nil
		},
	)
	return &snapshotPool{p: pool.NewObjectPoolWithDefaultConfig(context.Background(), factory)}
}

// Borrow returns a reset RGBA buffer for the caller to fill with a
// readback, big enough for the pool's configured dimensions.
func (sp *snapshotPool) Borrow(ctx context.Context) (*image.RGBA, error) {
	obj, err := sp.p.BorrowObject(ctx)
	if err != nil {
		return nil, err
	}
	img := obj.(*image.RGBA)
	for i := range img.Pix {
		img.Pix[i] = 0
	}
	return img, nil
}

// Return releases img back to the pool for reuse by the next snapshot.
func (sp *snapshotPool) Return(ctx context.Context, img *image.RGBA) error {
	return sp.p.ReturnObject(ctx, img)
}

func (sp *snapshotPool) Close(ctx context.Context) {
	sp.p.Close(ctx)
}
