package persist

import (
	"testing"

	"voxelcore/internal/block"
	"voxelcore/internal/chunk"
	"voxelcore/internal/coords"
)

func init() {
	block.Init()
}

func TestChunkToRegionRoundTrips(t *testing.T) {
	c := coords.Chunk{X: 17, Y: -3, Z: 31}
	rc, idx := ChunkToRegion(c)
	if rc.X != 1 || rc.Z != 1 || rc.Y != -1 {
		t.Errorf("unexpected region for %v: %v", c, rc)
	}
	if idx < 0 || idx >= RegionSize*RegionSize*RegionSize {
		t.Errorf("index %d out of range", idx)
	}
	lx, lz, ly := idx%RegionSize, (idx/RegionSize)%RegionSize, idx/(RegionSize*RegionSize)
	back := coords.Chunk{X: rc.X*RegionSize + lx, Y: rc.Y*RegionSize + ly, Z: rc.Z*RegionSize + lz}
	if back != c {
		t.Errorf("region %v index %d maps back to %v, want %v", rc, idx, back, c)
	}
}

func TestSaveAndLoadChunkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := New(dir)

	stoneID, _ := block.ByName("stone")
	c := coords.Chunk{X: 2, Y: 0, Z: -5}
	ch := chunk.New(c)
	ch.Set(1, 2, 3, stoneID)
	ch.Generated = true

	if err := m.SaveChunk(ch); err != nil {
		t.Fatalf("SaveChunk: %v", err)
	}

	loaded, ok, err := m.LoadChunk(c)
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if !ok {
		t.Fatal("expected chunk to be found after save")
	}
	if got := loaded.Get(1, 2, 3); got != stoneID {
		t.Errorf("expected stone at (1,2,3), got %v", got)
	}
	if !loaded.Generated {
		t.Errorf("expected Generated to round-trip true")
	}
}

func TestLoadChunkMissingReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	m := New(dir)
	_, ok, err := m.LoadChunk(coords.Chunk{X: 99, Y: 99, Z: 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expected ok=false for a never-saved chunk")
	}
}

func TestSavePlayerAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := New(dir)

	id := NewPlayerID()
	data := PlayerData{ID: id, Name: "steve", Position: [3]float64{1, 70, 1}, Yaw: 90, Pitch: 0}
	if err := m.SavePlayer(data); err != nil {
		t.Fatalf("SavePlayer: %v", err)
	}

	loaded, ok, err := m.LoadPlayer(id)
	if err != nil {
		t.Fatalf("LoadPlayer: %v", err)
	}
	if !ok {
		t.Fatal("expected player record to be found")
	}
	if loaded.Name != "steve" || loaded.Position != data.Position {
		t.Errorf("player data did not round-trip: %+v", loaded)
	}
}

func TestLoadPlayerMissingReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	m := New(dir)
	_, ok, err := m.LoadPlayer(NewPlayerID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expected ok=false for a never-saved player")
	}
}
