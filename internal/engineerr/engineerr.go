// Package engineerr defines the sentinel errors every exported engine
// operation returns from, matching the error taxonomy: a position outside
// the representable world, a read against a chunk that hasn't loaded yet, a
// generation failure, a stale mesh request, and an I/O failure during
// persistence.
package engineerr

import "errors"

var (
	// ErrOutOfRange is returned for a world position outside the engine's
	// representable vertical range.
	ErrOutOfRange = errors.New("engine: position out of range")

	// ErrNotLoaded is returned when a query targets a chunk the world store
	// has not (yet) loaded.
	ErrNotLoaded = errors.New("engine: chunk not loaded")

	// ErrGenerationFailure wraps an unexpected failure from the terrain
	// generator.
	ErrGenerationFailure = errors.New("engine: terrain generation failed")

	// ErrMeshStale names a completed mesh result that no longer matches its
	// source chunk's version. No public API call returns it: the scheduler
	// drops such a result silently and re-meshes on a later Tick.
	ErrMeshStale = errors.New("engine: mesh result is stale")

	// ErrPersistenceIO wraps a region-file or player-record I/O failure.
	ErrPersistenceIO = errors.New("engine: persistence I/O error")
)
