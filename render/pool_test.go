package render

import (
	"context"
	"testing"
)

func TestSnapshotPoolBorrowReturnsZeroedBuffer(t *testing.T) {
	ctx := context.Background()
	sp := newSnapshotPool(4, 4)
	defer sp.Close(ctx)

	img, err := sp.Borrow(ctx)
	if err != nil {
		t.Fatalf("Borrow: %v", err)
	}
	for i, px := range img.Pix {
		if px != 0 {
			t.Fatalf("pixel %d = %d, want 0 on a fresh borrow", i, px)
		}
	}
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	if err := sp.Return(ctx, img); err != nil {
		t.Fatalf("Return: %v", err)
	}

	img2, err := sp.Borrow(ctx)
	if err != nil {
		t.Fatalf("Borrow after Return: %v", err)
	}
	for i, px := range img2.Pix {
		if px != 0 {
			t.Fatalf("reused pixel %d = %d, want 0 (Borrow must reset content)", i, px)
		}
	}
}
