//go:build !nogpu

package gpu

import (
	"sync"
	"time"

	"github.com/gogpu/wgpu/hal"

	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/backend"
	"github.com/swen-ui/swen/tile"
)

// config is the uniform block of the tile shader.
// Must match Config in tile_fill.wgsl.
type config struct {
	ViewportWidth  uint32
	ViewportHeight uint32
	TileColumns    uint32
	TileRows       uint32
	TileCount      uint32
	Pad1           uint32
	Pad2           uint32
	Pad3           uint32
}

// Backend renders tile work through WebGPU compute.
//
// It is constructed explicitly with the host's device and queue; the
// registry never creates one because a device cannot be conjured from
// nothing. Until HAL exposes buffer binding, Submit validates the GPU
// data path (record packing, serialization) and mirrors the shader
// algorithm on the CPU.
type Backend struct {
	mu sync.Mutex

	device   hal.Device
	queue    hal.Queue
	pipeline *tileFillPipeline

	width  int32
	height int32

	// framebuffer is the CPU mirror of the shader's output buffer:
	// one packed RGBA8 word per pixel.
	framebuffer []uint32

	uploadedBytes uint64
	initialized   bool
}

// New creates a GPU backend over the host's device and queue.
func New(device hal.Device, queue hal.Queue) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	return &Backend{device: device, queue: queue}, nil
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendGPU
}

// Init compiles the tile shader and builds the compute pipelines.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := newTileFillPipeline(b.device, b.queue)
	if err != nil {
		return err
	}
	b.pipeline = p
	b.initialized = true

	swen.Logger().Info("gpu: backend initialized",
		"spirv_words", len(p.spirvCode))
	return nil
}

// Close releases all GPU resources.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipeline != nil {
		b.pipeline.destroy()
		b.pipeline = nil
	}
	b.framebuffer = nil
	b.initialized = false
}

// Capabilities reports the GPU feature set.
func (b *Backend) Capabilities() backend.Capabilities {
	return backend.Capabilities{
		TileRendering:  true,
		ComputeShaders: true,
	}
}

// Resize reallocates the framebuffer mirror.
func (b *Backend) Resize(width, height int32) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.width = width
	b.height = height
	b.framebuffer = make([]uint32, int(width)*int(height))
	return nil
}

// InvalidateCache is a no-op; nothing is cached between frames yet.
func (b *Backend) InvalidateCache() {}

// Present is a no-op until a surface swap chain is attached.
func (b *Backend) Present() error {
	if !b.initialized {
		return ErrNotInitialized
	}
	return nil
}

// Framebuffer returns the CPU mirror of the last submitted frame.
func (b *Backend) Framebuffer() []uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.framebuffer
}

// Submit packs the snapshot into GPU records and runs the tile fill.
func (b *Backend) Submit(snap *tile.FrameSnapshot) (backend.FrameResult, error) {
	if snap == nil {
		return backend.FrameResult{}, ErrNilSnapshot
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return backend.FrameResult{}, ErrNotInitialized
	}

	start := time.Now()

	if b.width != snap.ViewportWidth || b.height != snap.ViewportHeight {
		if snap.ViewportWidth <= 0 || snap.ViewportHeight <= 0 {
			return backend.FrameResult{}, ErrInvalidDimensions
		}
		b.width = snap.ViewportWidth
		b.height = snap.ViewportHeight
		b.framebuffer = make([]uint32, int(b.width)*int(b.height))
	}

	// Pack and serialize the upload payload; this is the exact byte
	// stream the bound buffers will carry.
	work, segs := tile.SnapshotToGPU(snap)
	workBytes := tile.TileWorkToBytes(work)
	segBytes := tile.SegmentsToBytes(segs)
	b.uploadedBytes = uint64(len(workBytes) + len(segBytes))

	cfg := config{
		ViewportWidth:  uint32(snap.ViewportWidth),
		ViewportHeight: uint32(snap.ViewportHeight),
		TileColumns:    uint32(snap.TilesX),
		TileRows:       uint32(snap.TilesY),
		TileCount:      uint32(len(work)),
	}

	// CPU mirror of cs_clear and cs_fill_solid.
	b.clearMirror()
	b.fillMirror(cfg, work)

	return backend.FrameResult{
		SubmitTime:     time.Since(start),
		DrawCalls:      2, // clear dispatch + fill dispatch
		TilesRendered:  len(work),
		GPUMemoryBytes: b.uploadedBytes,
	}, nil
}

// clearMirror mirrors cs_clear.
func (b *Backend) clearMirror() {
	clear(b.framebuffer)
}

// fillMirror mirrors cs_fill_solid: one virtual workgroup per tile,
// one invocation per pixel.
func (b *Backend) fillMirror(cfg config, work []tile.GPUTileWork) {
	for _, w := range work {
		tileX := w.Coord & 0xffff
		tileY := w.Coord >> 16
		for ly := uint32(0); ly < swen.TileSize; ly++ {
			py := tileY*swen.TileSize + ly
			if py >= cfg.ViewportHeight {
				continue
			}
			for lx := uint32(0); lx < swen.TileSize; lx++ {
				px := tileX*swen.TileSize + lx
				if px >= cfg.ViewportWidth {
					continue
				}
				idx := py*cfg.ViewportWidth + px
				b.framebuffer[idx] = blendOver(b.framebuffer[idx], w.SolidColor)
			}
		}
	}
}

// blendOver mirrors the shader's source-over blend on packed RGBA8.
func blendOver(dst, src uint32) uint32 {
	sa := (src >> 24) & 0xff
	if sa == 255 {
		return src
	}
	ia := 255 - sa
	r := ((src&0xff)*sa + (dst&0xff)*ia) / 255
	g := (((src>>8)&0xff)*sa + ((dst>>8)&0xff)*ia) / 255
	bl := (((src>>16)&0xff)*sa + ((dst>>16)&0xff)*ia) / 255
	a := 255 - (ia*(255-((dst>>24)&0xff)))/255
	return r | g<<8 | bl<<16 | a<<24
}

// Ensure Backend implements the backend interface.
var _ backend.Backend = (*Backend)(nil)
