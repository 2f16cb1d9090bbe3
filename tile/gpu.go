package tile

import (
	"github.com/gogpu/gputypes"
)

// TargetFormat is the texture format tile fills are authored against.
// Backends that render into a different surface format convert at
// present time.
const TargetFormat = gputypes.TextureFormatRGBA8Unorm

// GPUTileWork is the SSBO layout of TileWork.
// Every field is 32 bits wide so the record needs no compiler-inserted
// padding; the struct must match the tile shader's TileWork layout.
type GPUTileWork struct {
	Coord          uint32 // Packed coordinate: (y << 16) | x
	Classification uint32 // 0 = solid, 1 = edge
	SolidColor     uint32 // RGBA8 packed little-endian: r | g<<8 | b<<16 | a<<24
	SegmentStart   uint32 // First segment index
	SegmentCount   uint32 // Segment count
	ClipIndex      uint32 // Clip-table index plus one; 0 = no clip
	PaintIndex     uint32 // Paint-table index
	ZOrder         uint32 // Draw order within the tile
}

// GPUSegment is the SSBO layout of Segment.
// Coordinates are tile-local 8.8 fixed point widened to 32 bits.
type GPUSegment struct {
	X0      int32
	Y0      int32
	X1      int32
	Y1      int32
	Winding int32 // +1 or -1
	Pad1    uint32
	Pad2    uint32
	Pad3    uint32
}

// gpuTileWorkSize and gpuSegmentSize are the serialized record sizes.
const (
	gpuTileWorkSize = 32
	gpuSegmentSize  = 32
)

// PackColor packs an RGBA8 color for GPU upload.
func PackColor(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// SnapshotToGPU converts a snapshot's tile work and segments to their
// GPU-packed forms.
func SnapshotToGPU(snap *FrameSnapshot) ([]GPUTileWork, []GPUSegment) {
	work := make([]GPUTileWork, len(snap.TileWork))
	for i, w := range snap.TileWork {
		work[i] = GPUTileWork{
			Coord:          w.Coord.Pack(),
			Classification: uint32(w.Classification),
			SolidColor:     PackColor(w.SolidColor.R, w.SolidColor.G, w.SolidColor.B, w.SolidColor.A),
			SegmentStart:   w.SegmentStart,
			SegmentCount:   uint32(w.SegmentCount),
			ClipIndex:      uint32(w.ClipIndex),
			PaintIndex:     uint32(w.PaintIndex),
			ZOrder:         uint32(w.ZOrder),
		}
	}

	segs := make([]GPUSegment, len(snap.Segments))
	for i, seg := range snap.Segments {
		segs[i] = GPUSegment{
			X0:      int32(seg.X0),
			Y0:      int32(seg.Y0),
			X1:      int32(seg.X1),
			Y1:      int32(seg.Y1),
			Winding: int32(seg.Winding),
		}
	}
	return work, segs
}

// Byte serialization for GPU buffer upload.

func writeUint32(buf []byte, offset int, val uint32) {
	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
	buf[offset+2] = byte(val >> 16)
	buf[offset+3] = byte(val >> 24)
}

func writeInt32(buf []byte, offset int, val int32) {
	writeUint32(buf, offset, uint32(val))
}

// TileWorkToBytes serializes GPU tile work for SSBO upload.
func TileWorkToBytes(work []GPUTileWork) []byte {
	buf := make([]byte, len(work)*gpuTileWorkSize)
	for i, w := range work {
		off := i * gpuTileWorkSize
		writeUint32(buf, off+0, w.Coord)
		writeUint32(buf, off+4, w.Classification)
		writeUint32(buf, off+8, w.SolidColor)
		writeUint32(buf, off+12, w.SegmentStart)
		writeUint32(buf, off+16, w.SegmentCount)
		writeUint32(buf, off+20, w.ClipIndex)
		writeUint32(buf, off+24, w.PaintIndex)
		writeUint32(buf, off+28, w.ZOrder)
	}
	return buf
}

// SegmentsToBytes serializes GPU segments for SSBO upload.
func SegmentsToBytes(segs []GPUSegment) []byte {
	buf := make([]byte, len(segs)*gpuSegmentSize)
	for i, seg := range segs {
		off := i * gpuSegmentSize
		writeInt32(buf, off+0, seg.X0)
		writeInt32(buf, off+4, seg.Y0)
		writeInt32(buf, off+8, seg.X1)
		writeInt32(buf, off+12, seg.Y1)
		writeInt32(buf, off+16, seg.Winding)
		writeUint32(buf, off+20, seg.Pad1)
		writeUint32(buf, off+24, seg.Pad2)
		writeUint32(buf, off+28, seg.Pad3)
	}
	return buf
}
