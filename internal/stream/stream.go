// Package stream implements the streaming scheduler: a bounded worker pool
// that walks chunks near a moving focus point through generation and
// meshing, installing results back into the world store only when they are
// still current, and discarding stale results (§4.6 of the streaming
// design).
package stream

import (
	"container/heap"
	"runtime"
	"sync"

	"voxelcore/internal/chunk"
	"voxelcore/internal/coords"
	"voxelcore/internal/mesh"
	"voxelcore/internal/profiling"
	"voxelcore/internal/store"
	"voxelcore/internal/terrain"
)

// State is a chunk's position in the streaming state machine.
type State int

const (
	StateAbsent State = iota
	StateGenQueued
	StateGenerating
	StateLoaded
	StateMeshQueued
	StateMeshing
	StateDisplayed
	StateUnloading
)

// MeshUpdate is a ready-to-upload vertex buffer for one chunk.
type MeshUpdate struct {
	Coord    coords.Chunk
	Vertices []uint32
}

type genJob struct {
	coord    coords.Chunk
	priority int
}

type meshJob struct {
	coord    coords.Chunk
	version  uint64
	priority int
}

// priorityQueue is a min-heap over squared distance to the last known focus,
// so near chunks are generated/meshed before far ones.
type priorityQueue[T any] struct {
	items    []T
	priority func(T) int
}

func (q *priorityQueue[T]) Len() int            { return len(q.items) }
func (q *priorityQueue[T]) Less(i, j int) bool  { return q.priority(q.items[i]) < q.priority(q.items[j]) }
func (q *priorityQueue[T]) Swap(i, j int)       { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *priorityQueue[T]) Push(x interface{})  { q.items = append(q.items, x.(T)) }
func (q *priorityQueue[T]) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// Scheduler owns the generation/mesh worker pool and per-chunk state.
type Scheduler struct {
	st  *store.Store
	cfg terrain.Config

	mu     sync.Mutex
	states map[coords.Chunk]State
	focus  coords.World
	radius int

	genQueue  priorityQueue[genJob]
	meshQueue priorityQueue[meshJob]

	genJobs   chan genJob
	meshJobs  chan meshJob
	genDone   chan genResult
	meshDone  chan meshResult

	updates   chan MeshUpdate
	removals  chan coords.Chunk

	wg     sync.WaitGroup
	closed chan struct{}
	once   sync.Once
}

type genResult struct {
	coord coords.Chunk
	ch    *chunk.Chunk
}

type meshResult struct {
	coord    coords.Chunk
	version  uint64
	vertices []uint32
}

// New builds a Scheduler backed by st, generating with cfg, with
// runtime.NumCPU()-1 generation workers and as many mesh workers (minimum 1
// of each).
func New(st *store.Store, cfg terrain.Config) *Scheduler {
	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}

	s := &Scheduler{
		st:       st,
		cfg:      cfg,
		states:   make(map[coords.Chunk]State),
		genJobs:  make(chan genJob, 4096),
		meshJobs: make(chan meshJob, 4096),
		genDone:  make(chan genResult, 256),
		meshDone: make(chan meshResult, 256),
		updates:  make(chan MeshUpdate, 256),
		removals: make(chan coords.Chunk, 256),
		closed:   make(chan struct{}),
	}
	s.genQueue.priority = func(j genJob) int { return j.priority }
	s.meshQueue.priority = func(j meshJob) int { return j.priority }

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.genWorker()
		s.wg.Add(1)
		go s.meshWorker()
	}
	return s
}

// Close stops all workers. Safe to call more than once.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		close(s.closed)
		close(s.genJobs)
		close(s.meshJobs)
	})
	s.wg.Wait()
}

func (s *Scheduler) genWorker() {
	defer s.wg.Done()
	for job := range s.genJobs {
		if !s.genOne(job) {
			return
		}
	}
}

func (s *Scheduler) genOne(job genJob) bool {
	defer profiling.Track("stream.genWorker")()
	ch := terrain.Generate(s.cfg, job.coord, s.st)
	select {
	case s.genDone <- genResult{coord: job.coord, ch: ch}:
		return true
	case <-s.closed:
		return false
	}
}

func (s *Scheduler) meshWorker() {
	defer s.wg.Done()
	for job := range s.meshJobs {
		if !s.meshOne(job) {
			return
		}
	}
}

func (s *Scheduler) meshOne(job meshJob) bool {
	defer profiling.Track("stream.meshWorker")()
	snap := s.st.TakeSnapshot(job.coord)
	var vertices []uint32
	if snap != nil {
		vertices = mesh.Build(snap)
	}
	select {
	case s.meshDone <- meshResult{coord: job.coord, version: job.version, vertices: vertices}:
		return true
	case <-s.closed:
		return false
	}
}

// SetFocus updates the point chunks stream around and the load radius (in
// chunks, measured as a 3D sphere around the focus chunk; see wantedLocked).
func (s *Scheduler) SetFocus(p coords.World, radius int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = p
	s.radius = radius
}

// Tick runs one pass of the six-step streaming algorithm: enqueue missing
// chunks near the focus, enqueue unmeshed loaded chunks, drain completed
// generation jobs into the store, drain completed mesh jobs (discarding any
// whose source chunk has since changed version), and evict chunks that
// fell outside the radius.
func (s *Scheduler) Tick() {
	defer profiling.Track("stream.Tick")()
	s.enqueueMissingGeneration()
	s.enqueueUnmeshedLoaded()
	s.drainGeneration()
	s.drainMeshing()
	s.evictFar()
}

func distanceSq(c coords.Chunk, focus coords.Chunk) int {
	dx, dy, dz := c.X-focus.X, c.Y-focus.Y, c.Z-focus.Z
	return dx*dx + dy*dy + dz*dz
}

// enqueueMissingGeneration pushes every wanted chunk not yet loaded and not
// already in flight onto the generation priority queue.
func (s *Scheduler) enqueueMissingGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()

	focusChunk := coords.WorldToChunk(s.focus)
	for _, c := range s.wantedLocked() {
		if s.st.Has(c) {
			continue
		}
		if st, ok := s.states[c]; ok && st != StateAbsent {
			continue
		}
		s.states[c] = StateGenQueued
		heap.Push(&s.genQueue, genJob{coord: c, priority: distanceSq(c, focusChunk)})
	}

	for s.genQueue.Len() > 0 {
		job := heap.Pop(&s.genQueue).(genJob)
		select {
		case s.genJobs <- job:
			s.states[job.coord] = StateGenerating
		default:
			heap.Push(&s.genQueue, job)
			return
		}
	}
}

// wantedLocked is wanted() without re-acquiring s.mu; caller must hold it.
// The render radius is spherical in chunk space: every coordinate within R
// chunks (by squared distance) of the focus chunk on all three axes.
func (s *Scheduler) wantedLocked() []coords.Chunk {
	center := coords.WorldToChunk(s.focus)
	r2 := s.radius * s.radius
	var out []coords.Chunk
	for dx := -s.radius; dx <= s.radius; dx++ {
		for dy := -s.radius; dy <= s.radius; dy++ {
			for dz := -s.radius; dz <= s.radius; dz++ {
				if dx*dx+dy*dy+dz*dz > r2 {
					continue
				}
				out = append(out, coords.Chunk{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz})
			}
		}
	}
	return out
}

// enqueueUnmeshedLoaded pushes every loaded chunk in state Loaded onto the
// mesh priority queue.
func (s *Scheduler) enqueueUnmeshedLoaded() {
	s.mu.Lock()
	defer s.mu.Unlock()

	focusChunk := coords.WorldToChunk(s.focus)
	for c, st := range s.states {
		if st != StateLoaded {
			continue
		}
		ch := s.st.Get(c)
		if ch == nil {
			continue
		}
		s.states[c] = StateMeshQueued
		heap.Push(&s.meshQueue, meshJob{coord: c, version: ch.Version, priority: distanceSq(c, focusChunk)})
	}

	for s.meshQueue.Len() > 0 {
		job := heap.Pop(&s.meshQueue).(meshJob)
		select {
		case s.meshJobs <- job:
			s.states[job.coord] = StateMeshing
		default:
			heap.Push(&s.meshQueue, job)
			return
		}
	}
}

// drainGeneration installs every completed generation result into the
// store, transitions that chunk to Loaded, and reseams any neighbor chunk
// that was already meshed against this border while it was still Absent
// (that neighbor's mesh treated this border as exposed air and must be
// rebuilt now that real blocks arrived).
func (s *Scheduler) drainGeneration() {
	for {
		select {
		case res := <-s.genDone:
			s.st.Install(res.ch)
			s.mu.Lock()
			s.states[res.coord] = StateLoaded
			for _, n := range faceNeighbors(res.coord) {
				if st, ok := s.states[n]; ok && st != StateAbsent && st != StateGenQueued && st != StateGenerating {
					s.states[n] = StateLoaded
				}
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// faceNeighbors returns the six chunk coordinates sharing a face with c.
func faceNeighbors(c coords.Chunk) [6]coords.Chunk {
	return [6]coords.Chunk{
		{X: c.X + 1, Y: c.Y, Z: c.Z},
		{X: c.X - 1, Y: c.Y, Z: c.Z},
		{X: c.X, Y: c.Y + 1, Z: c.Z},
		{X: c.X, Y: c.Y - 1, Z: c.Z},
		{X: c.X, Y: c.Y, Z: c.Z + 1},
		{X: c.X, Y: c.Y, Z: c.Z - 1},
	}
}

// drainMeshing installs every completed mesh result whose source chunk is
// still at the version the mesh was built from; a result built from a
// now-superseded version (edited or regenerated mid-flight) is discarded
// and the chunk is left for the next Tick to re-mesh.
func (s *Scheduler) drainMeshing() {
	for {
		select {
		case res := <-s.meshDone:
			ch := s.st.Get(res.coord)
			s.mu.Lock()
			if ch == nil {
				s.mu.Unlock()
				continue
			}
			if ch.Version != res.version {
				// stale: chunk changed after the snapshot was taken.
				s.states[res.coord] = StateLoaded
				s.mu.Unlock()
				continue
			}
			s.states[res.coord] = StateDisplayed
			ch.Dirty = false
			s.mu.Unlock()

			select {
			case s.updates <- MeshUpdate{Coord: res.coord, Vertices: res.vertices}:
			case <-s.closed:
				return
			}
		default:
			return
		}
	}
}

// evictFar unloads any tracked chunk farther than the current radius plus a
// fixed hysteresis of 2 chunks, emitting a removal event so the engine can
// drop its GPU-side mesh too.
func (s *Scheduler) evictFar() {
	s.mu.Lock()
	focusChunk := coords.WorldToChunk(s.focus)
	radius := s.radius
	var toEvict []coords.Chunk
	for c := range s.states {
		if distanceSq(c, focusChunk) > (radius+2)*(radius+2) {
			toEvict = append(toEvict, c)
		}
	}
	for _, c := range toEvict {
		delete(s.states, c)
	}
	s.mu.Unlock()

	for _, c := range toEvict {
		s.st.Unload(c)
		select {
		case s.removals <- c:
		case <-s.closed:
			return
		}
	}
}

// DrainMeshUpdates returns every mesh update produced since the last call,
// without blocking.
func (s *Scheduler) DrainMeshUpdates() []MeshUpdate {
	var out []MeshUpdate
	for {
		select {
		case u := <-s.updates:
			out = append(out, u)
		default:
			return out
		}
	}
}

// DrainMeshRemovals returns every chunk coordinate evicted since the last
// call, without blocking.
func (s *Scheduler) DrainMeshRemovals() []coords.Chunk {
	var out []coords.Chunk
	for {
		select {
		case c := <-s.removals:
			out = append(out, c)
		default:
			return out
		}
	}
}

// State returns the current streaming state of a chunk (StateAbsent if
// never seen).
func (s *Scheduler) State(c coords.Chunk) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[c]
}

// MarkDirty requeues an already-loaded chunk for re-meshing. The edit
// coordinator calls this after writing a block so the next Tick rebuilds
// the chunk's mesh (and any neighbor whose boundary face is now stale).
// No-op for a chunk the scheduler is not tracking.
func (s *Scheduler) MarkDirty(c coords.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.states[c]; ok {
		s.states[c] = StateLoaded
	}
}
