// Package persist implements on-disk world persistence: region files that
// batch 16x16x16 chunks behind gob encoding and deflate compression, and a
// separate per-player JSON record. Both are written via a temp-file-plus-
// rename so a crash mid-write never corrupts the existing file.
package persist

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/flate"

	"voxelcore/internal/block"
	"voxelcore/internal/chunk"
	"voxelcore/internal/coords"
)

// RegionSize is the edge length of a region in chunks on every axis.
const RegionSize = 16

// RegionCoord identifies a region by dividing a chunk coordinate by
// RegionSize, floored.
type RegionCoord struct {
	X, Y, Z int
}

// ChunkToRegion returns the region containing c and c's flat index within
// that region's 16x16x16 local grid.
func ChunkToRegion(c coords.Chunk) (RegionCoord, int) {
	rc := RegionCoord{
		X: coords.FloorDiv(c.X, RegionSize),
		Y: coords.FloorDiv(c.Y, RegionSize),
		Z: coords.FloorDiv(c.Z, RegionSize),
	}
	lx := coords.FloorMod(c.X, RegionSize)
	ly := coords.FloorMod(c.Y, RegionSize)
	lz := coords.FloorMod(c.Z, RegionSize)
	idx := ly*RegionSize*RegionSize + lz*RegionSize + lx
	return rc, idx
}

// chunkRecord is the gob-encoded payload for one chunk within a region.
type chunkRecord struct {
	Coord     coords.Chunk
	Blocks    [chunk.BlockCount]block.ID
	Generated bool
}

type regionFile struct {
	Chunks map[int]chunkRecord
}

// Manager reads and writes region files and player records beneath a root
// directory.
type Manager struct {
	dir string
}

func New(dir string) *Manager {
	return &Manager{dir: dir}
}

func (m *Manager) regionPath(rc RegionCoord) string {
	name := fmt.Sprintf("r.%d.%d.%d.region", rc.X, rc.Y, rc.Z)
	return filepath.Join(m.dir, "regions", name)
}

// LoadChunk reads a single chunk out of its region file. ok is false if
// the region file doesn't exist or doesn't contain this chunk.
func (m *Manager) LoadChunk(c coords.Chunk) (*chunk.Chunk, bool, error) {
	rc, idx := ChunkToRegion(c)
	region, err := m.readRegion(rc)
	if err != nil {
		return nil, false, err
	}
	if region == nil {
		return nil, false, nil
	}
	rec, ok := region.Chunks[idx]
	if !ok {
		return nil, false, nil
	}
	out := chunk.New(c)
	out.LoadBlocks(rec.Blocks)
	out.Generated = rec.Generated
	return out, true, nil
}

// SaveChunk writes ch into its region file, read-modify-write, then
// atomically replaces the region file on disk.
func (m *Manager) SaveChunk(ch *chunk.Chunk) error {
	rc, idx := ChunkToRegion(ch.Coord)
	region, err := m.readRegion(rc)
	if err != nil {
		return err
	}
	if region == nil {
		region = &regionFile{Chunks: make(map[int]chunkRecord)}
	}
	region.Chunks[idx] = chunkRecord{
		Coord:     ch.Coord,
		Blocks:    ch.Snapshot(),
		Generated: ch.Generated,
	}
	return m.writeRegion(rc, region)
}

func (m *Manager) readRegion(rc RegionCoord) (*regionFile, error) {
	path := m.regionPath(rc)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("persist: read region %v: %w", rc, err)
	}

	zr := flate.NewReader(bytes.NewReader(raw))
	defer zr.Close()
	decoded, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("persist: inflate region %v: %w", rc, err)
	}

	var region regionFile
	if err := gob.NewDecoder(bytes.NewReader(decoded)).Decode(&region); err != nil {
		return nil, fmt.Errorf("persist: decode region %v: %w", rc, err)
	}
	return &region, nil
}

func (m *Manager) writeRegion(rc RegionCoord, region *regionFile) error {
	var encoded bytes.Buffer
	if err := gob.NewEncoder(&encoded).Encode(region); err != nil {
		return fmt.Errorf("persist: encode region %v: %w", rc, err)
	}

	var compressed bytes.Buffer
	zw, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	if err != nil {
		return fmt.Errorf("persist: create deflate writer: %w", err)
	}
	if _, err := zw.Write(encoded.Bytes()); err != nil {
		return fmt.Errorf("persist: deflate region %v: %w", rc, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("persist: close deflate writer: %w", err)
	}

	path := m.regionPath(rc)
	return writeFileAtomic(path, compressed.Bytes())
}

// PlayerData is the persisted state for one player.
type PlayerData struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position [3]float64 `json:"position"`
	Yaw      float32   `json:"yaw"`
	Pitch    float32   `json:"pitch"`
}

// NewPlayerID mints a fresh player identifier.
func NewPlayerID() uuid.UUID {
	return uuid.New()
}

func (m *Manager) playerPath(id uuid.UUID) string {
	return filepath.Join(m.dir, "players", id.String()+".json")
}

// LoadPlayer reads a player's persisted state. ok is false if no record
// exists for id.
func (m *Manager) LoadPlayer(id uuid.UUID) (PlayerData, bool, error) {
	raw, err := os.ReadFile(m.playerPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return PlayerData{}, false, nil
		}
		return PlayerData{}, false, fmt.Errorf("persist: read player %s: %w", id, err)
	}
	var data PlayerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return PlayerData{}, false, fmt.Errorf("persist: decode player %s: %w", id, err)
	}
	return data, true, nil
}

// SavePlayer atomically writes a player's state.
func (m *Manager) SavePlayer(data PlayerData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("persist: encode player %s: %w", data.ID, err)
	}
	return writeFileAtomic(m.playerPath(data.ID), raw)
}

// writeFileAtomic writes data to a temp file beside path, then renames it
// into place, so a concurrent reader or a crash mid-write never observes a
// partially written file.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("persist: create directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("persist: write temp file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("persist: rename %s to %s: %w", tmp, path, err)
	}
	return nil
}
