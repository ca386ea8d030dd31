package noise

import (
	"math"
	"math/rand"
	"testing"
)

func TestHash3Deterministic(t *testing.T) {
	first := hash3(10, 20, 30, 42)
	for i := 0; i < 100; i++ {
		if got := hash3(10, 20, 30, 42); got != first {
			t.Errorf("hash3 not deterministic: got %d, want %d", got, first)
		}
	}
}

func TestHash3DifferentInputs(t *testing.T) {
	seed := int64(42)
	if hash3(1, 0, 0, seed) == hash3(2, 0, 0, seed) {
		t.Errorf("hash3 should differ for different X")
	}
	if hash3(0, 1, 0, seed) == hash3(0, 2, 0, seed) {
		t.Errorf("hash3 should differ for different Y")
	}
	if hash3(0, 0, 1, seed) == hash3(0, 0, 2, seed) {
		t.Errorf("hash3 should differ for different Z")
	}
	if hash3(1, 1, 1, 100) == hash3(1, 1, 1, 200) {
		t.Errorf("hash3 should differ for different seed")
	}
	if hash3(1, 2, 3, seed) == hash3(3, 2, 1, seed) {
		t.Errorf("hash3 should differ for axis swap")
	}
}

func TestValueNoise3DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	seed := int64(42)
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		v := ValueNoise3D(x, y, z, seed)
		if v < 0.0 || v > 1.0 {
			t.Errorf("ValueNoise3D(%f,%f,%f) = %f, expected in [0,1]", x, y, z, v)
		}
	}
}

func TestValueNoise3DDeterministic(t *testing.T) {
	first := ValueNoise3D(1.5, 2.7, 3.3, 42)
	for i := 0; i < 100; i++ {
		if got := ValueNoise3D(1.5, 2.7, 3.3, 42); got != first {
			t.Errorf("ValueNoise3D not deterministic: got %f, want %f", got, first)
		}
	}
}

func TestValueNoise3DContinuity(t *testing.T) {
	seed := int64(42)
	v1 := ValueNoise3D(1.0, 1.0, 1.0, seed)
	v2 := ValueNoise3D(1.01, 1.0, 1.0, seed)
	if diff := math.Abs(v1 - v2); diff >= 0.1 {
		t.Errorf("ValueNoise3D not continuous: v1=%f v2=%f diff=%f", v1, v2, diff)
	}
}

func TestOctaveNoise3DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	seed := int64(42)
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		v := OctaveNoise3D(x, y, z, seed, 4, 0.5, 2.0)
		if v < 0.0 || v > 1.0 {
			t.Errorf("OctaveNoise3D(%f,%f,%f) = %f, expected in [0,1]", x, y, z, v)
		}
	}
}

func TestOctaveNoise3DDeterministic(t *testing.T) {
	first := OctaveNoise3D(1.5, 2.7, 3.3, 42, 4, 0.5, 2.0)
	for i := 0; i < 100; i++ {
		if got := OctaveNoise3D(1.5, 2.7, 3.3, 42, 4, 0.5, 2.0); got != first {
			t.Errorf("OctaveNoise3D not deterministic: got %f, want %f", got, first)
		}
	}
}

func TestOctaveNoise2DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(777))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*1000 - 500
		z := rng.Float64()*1000 - 500
		v := OctaveNoise2D(x, z, 7, 4, 0.5, 2.0)
		if v < 0.0 || v > 1.0 {
			t.Errorf("OctaveNoise2D(%f,%f) = %f, expected in [0,1]", x, z, v)
		}
	}
}
