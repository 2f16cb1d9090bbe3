// Package backend defines the consumer side of the compositor
// pipeline: a capability-described renderer that accepts immutable
// frame snapshots.
//
// Registered backends are selected via Get() or Default(); the GPU
// backend in backend/gpu is constructed directly with the host's device
// and is not registered.
package backend

import (
	"errors"
	"time"

	"github.com/swen-ui/swen/tile"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrInvalidSurfaceSize is returned when a resize has non-positive
	// dimensions.
	ErrInvalidSurfaceSize = errors.New("backend: invalid surface size")
)

// Backend consumes frame snapshots.
//
// The snapshot handed to Submit is valid until the pipeline's next
// scheduling pass; a backend must complete its submission, or copy
// what it needs, before returning.
type Backend interface {
	// Name returns the backend identifier (e.g. "software", "gpu").
	Name() string

	// Init initializes the backend.
	// This should be called before any rendering operations.
	Init() error

	// Submit renders one frame snapshot.
	Submit(snap *tile.FrameSnapshot) (FrameResult, error)

	// Present makes the last submitted frame visible.
	Present() error

	// Capabilities reports what the backend supports. The core never
	// assumes a capability the backend does not claim.
	Capabilities() Capabilities

	// Resize updates the output surface dimensions.
	Resize(width, height int32) error

	// InvalidateCache drops any cached tiles or groups.
	InvalidateCache()

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()
}

// Capabilities is the backend's self-reported feature bundle.
type Capabilities struct {
	// TileRendering indicates the backend consumes TileWork records
	// directly rather than replaying the instruction stream.
	TileRendering bool

	// IncrementalUpdate indicates dirty regions are honored.
	IncrementalUpdate bool

	// ComputeShaders indicates tile fills run as GPU compute.
	ComputeShaders bool

	// TileCaching indicates unchanged cache groups can be skipped.
	TileCaching bool

	// HardwareClip indicates clip indices are applied in hardware.
	HardwareClip bool
}

// FrameResult reports the cost of one submitted frame.
type FrameResult struct {
	// SubmitTime is the CPU time spent in Submit.
	SubmitTime time.Duration

	// GPUTime is the measured GPU execution time, or zero when the
	// backend cannot measure it.
	GPUTime time.Duration

	DrawCalls     int
	TilesRendered int
	TilesCached   int

	// GPUMemoryBytes is the backend's resident GPU memory.
	GPUMemoryBytes uint64
}
