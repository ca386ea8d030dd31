// Package engine is the public API surface of voxelcore: a headless,
// render-agnostic voxel world engine. It wires the coordinate, block,
// terrain, store, mesh, streaming, edit, and query packages into one
// handle a host application (a renderer, a server, a test) drives by
// calling Tick and draining mesh updates.
package engine

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"voxelcore/internal/block"
	"voxelcore/internal/coords"
	"voxelcore/internal/edit"
	"voxelcore/internal/engineconfig"
	"voxelcore/internal/engineerr"
	"voxelcore/internal/persist"
	"voxelcore/internal/store"
	"voxelcore/internal/stream"
	"voxelcore/internal/terrain"
	"voxelcore/internal/voxelquery"
)

// Engine is a single voxel world: its store, its streaming scheduler, and
// its edit coordinator. Always construct via New; the zero value is not
// usable.
type Engine struct {
	cfg   engineconfig.Config
	store *store.Store
	sched *stream.Scheduler
	edits *edit.Coordinator
	pers  *persist.Manager
}

// New constructs a fresh Engine. Each call produces an entirely independent
// handle; there is no shared global state between engines in the same
// process, matching tests constructing a fresh handle per case.
func New(cfg engineconfig.Config) *Engine {
	block.Init()
	cfg = engineconfig.Normalize(cfg)

	st := store.New()
	sched := stream.New(st, terrain.DefaultConfig(cfg.Seed))
	coordinator := edit.New(st, sched)

	var pers *persist.Manager
	if cfg.PersistDir != "" {
		pers = persist.New(cfg.PersistDir)
	}

	return &Engine{cfg: cfg, store: st, sched: sched, edits: coordinator, pers: pers}
}

// Close stops all background workers. The Engine must not be used after
// Close returns.
func (e *Engine) Close() {
	e.sched.Close()
}

// OnPlayerMoved updates the focus point chunks stream around.
func (e *Engine) OnPlayerMoved(pos mgl32.Vec3) {
	p := coords.World{X: int(pos.X()), Y: int(pos.Y()), Z: int(pos.Z())}
	e.sched.SetFocus(p, e.cfg.LoadRadius)
}

// Tick advances the streaming scheduler by one step: enqueues newly-needed
// generation and meshing work, installs completed results, and evicts
// chunks that fell out of range.
func (e *Engine) Tick() {
	e.sched.Tick()
}

// GetBlock reads the block at an absolute world position.
func (e *Engine) GetBlock(p coords.World) (block.ID, error) {
	id, ok := e.store.GetBlock(p)
	if !ok {
		return block.Air, engineerr.ErrNotLoaded
	}
	return id, nil
}

// SetBlock writes a block through the edit coordinator, which enforces
// bedrock invulnerability and triggers a re-mesh of the affected chunks.
func (e *Engine) SetBlock(p coords.World, id block.ID) error {
	return e.edits.SetBlock(p, id)
}

// Raycast casts a ray from start in direction and returns the first solid
// block hit between minDist and maxDist.
func (e *Engine) Raycast(start, direction mgl32.Vec3, minDist, maxDist float32) voxelquery.RaycastResult {
	return voxelquery.Raycast(e.store, start, direction, minDist, maxDist)
}

// SweepAABB reports whether an axis-aligned box at pos (width on X/Z,
// height on Y) overlaps any solid block.
func (e *Engine) SweepAABB(pos mgl32.Vec3, width, height float32) bool {
	return voxelquery.SweepAABB(e.store, pos, width, height)
}

// DrainMeshUpdates returns every mesh update produced since the last call,
// without blocking. The host renderer uploads each to the GPU and
// associates it with its Coord.
func (e *Engine) DrainMeshUpdates() []stream.MeshUpdate {
	return e.sched.DrainMeshUpdates()
}

// DrainMeshRemovals returns every chunk coordinate evicted since the last
// call, without blocking. The host renderer should drop any GPU buffer
// associated with these coordinates.
func (e *Engine) DrainMeshRemovals() []coords.Chunk {
	return e.sched.DrainMeshRemovals()
}

// SaveChunk persists one chunk to disk, if persistence is configured.
func (e *Engine) SaveChunk(c coords.Chunk) error {
	if e.pers == nil {
		return nil
	}
	ch := e.store.Get(c)
	if ch == nil {
		return engineerr.ErrNotLoaded
	}
	if err := e.pers.SaveChunk(ch); err != nil {
		return engineerr.ErrPersistenceIO
	}
	return nil
}

// LoadPlayer loads a player's persisted state, if persistence is
// configured.
func (e *Engine) LoadPlayer(id uuid.UUID) (persist.PlayerData, bool, error) {
	if e.pers == nil {
		return persist.PlayerData{}, false, nil
	}
	data, ok, err := e.pers.LoadPlayer(id)
	if err != nil {
		return persist.PlayerData{}, false, engineerr.ErrPersistenceIO
	}
	return data, ok, nil
}

// SavePlayer persists a player's state, if persistence is configured.
func (e *Engine) SavePlayer(data persist.PlayerData) error {
	if e.pers == nil {
		return nil
	}
	if err := e.pers.SavePlayer(data); err != nil {
		return engineerr.ErrPersistenceIO
	}
	return nil
}
