package backend

import (
	"image"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/swen-ui/swen"
	"github.com/swen-ui/swen/tile"
)

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() Backend {
		return &SoftwareBackend{}
	})
}

// SoftwareBackend renders snapshots into a CPU image. It exists for
// golden-image tests and the reference host; it is not a full
// rasterizer. Edge tiles are rendered as solid with approximate
// coverage until a path rasterizer lands.
type SoftwareBackend struct {
	initialized bool
	width       int32
	height      int32
	img         *image.RGBA
}

// NewSoftwareBackend creates a software backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases the output image.
func (b *SoftwareBackend) Close() {
	b.img = nil
	b.initialized = false
}

// Capabilities reports the software feature set.
func (b *SoftwareBackend) Capabilities() Capabilities {
	return Capabilities{
		TileRendering: true,
	}
}

// Image returns the last rendered frame, or nil before the first
// submit.
func (b *SoftwareBackend) Image() *image.RGBA {
	return b.img
}

// Resize scales the retained frame to the new dimensions so hosts can
// keep presenting between a resize and the next submit.
func (b *SoftwareBackend) Resize(width, height int32) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSurfaceSize
	}
	if width == b.width && height == b.height {
		return nil
	}

	next := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	if b.img != nil {
		xdraw.ApproxBiLinear.Scale(next, next.Bounds(), b.img, b.img.Bounds(), xdraw.Src, nil)
	}
	b.img = next
	b.width = width
	b.height = height
	return nil
}

// InvalidateCache is a no-op; the software backend caches nothing.
func (b *SoftwareBackend) InvalidateCache() {}

// Present is a no-op; hosts read the frame via Image.
func (b *SoftwareBackend) Present() error {
	if !b.initialized {
		return ErrNotInitialized
	}
	return nil
}

// Submit paints every tile-work record into the output image in
// snapshot order.
func (b *SoftwareBackend) Submit(snap *tile.FrameSnapshot) (FrameResult, error) {
	if !b.initialized {
		return FrameResult{}, ErrNotInitialized
	}

	start := time.Now()

	if b.img == nil || b.width != snap.ViewportWidth || b.height != snap.ViewportHeight {
		if snap.ViewportWidth <= 0 || snap.ViewportHeight <= 0 {
			return FrameResult{}, ErrInvalidSurfaceSize
		}
		b.width = snap.ViewportWidth
		b.height = snap.ViewportHeight
		b.img = image.NewRGBA(image.Rect(0, 0, int(b.width), int(b.height)))
	}
	clear(b.img.Pix)

	for i := range snap.TileWork {
		b.fillTile(&snap.TileWork[i])
	}

	return FrameResult{
		SubmitTime:    time.Since(start),
		DrawCalls:     len(snap.TileWork),
		TilesRendered: len(snap.TileWork),
	}, nil
}

// fillTile blends one tile's fill into the image, clipped to the
// viewport.
func (b *SoftwareBackend) fillTile(w *tile.TileWork) {
	x0 := w.Coord.PixelX()
	y0 := w.Coord.PixelY()
	x1 := min(x0+swen.TileSize, b.width)
	y1 := min(y0+swen.TileSize, b.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	c := w.SolidColor
	for y := int(y0); y < int(y1); y++ {
		row := b.img.Pix[y*b.img.Stride+int(x0)*4 : y*b.img.Stride+int(x1)*4]
		for x := 0; x < len(row); x += 4 {
			if c.A == 255 {
				row[x+0] = c.R
				row[x+1] = c.G
				row[x+2] = c.B
				row[x+3] = 255
				continue
			}
			blendOver(row[x:x+4:x+4], c)
		}
	}
}

// blendOver applies non-premultiplied source-over onto one pixel.
func blendOver(dst []byte, c swen.Color) {
	a := uint32(c.A)
	ia := 255 - a
	dst[0] = uint8((uint32(c.R)*a + uint32(dst[0])*ia) / 255)
	dst[1] = uint8((uint32(c.G)*a + uint32(dst[1])*ia) / 255)
	dst[2] = uint8((uint32(c.B)*a + uint32(dst[2])*ia) / 255)
	dst[3] = uint8(255 - (ia*(255-uint32(dst[3])))/255)
}
