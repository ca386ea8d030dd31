package chunk

import (
	"testing"

	"voxelcore/internal/block"
	"voxelcore/internal/coords"
)

func TestGetSetRoundTrip(t *testing.T) {
	c := New(coords.Chunk{})
	c.Set(3, 4, 5, block.ID(7))
	if got := c.Get(3, 4, 5); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if !c.IsAir(0, 0, 0) {
		t.Errorf("fresh chunk should be all air")
	}
}

func TestOutOfBoundsReadsAsAir(t *testing.T) {
	c := New(coords.Chunk{})
	if got := c.Get(-1, 0, 0); got != block.Air {
		t.Errorf("out of bounds read should be air, got %d", got)
	}
	if got := c.Get(16, 0, 0); got != block.Air {
		t.Errorf("out of bounds read should be air, got %d", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := New(coords.Chunk{})
	c.Set(0, 0, 0, block.ID(3))
	cp := c.Clone()
	cp.Set(0, 0, 0, block.ID(9))
	if c.Get(0, 0, 0) != 3 {
		t.Errorf("mutating clone should not affect original")
	}
}
