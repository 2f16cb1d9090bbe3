package ir

import "github.com/swen-ui/swen"

// TileCoord addresses a tile in the frame grid.
// Coordinates are clamped to zero; content left of or above the origin
// lands in column or row zero.
type TileCoord struct {
	X, Y uint16
}

// TileFromPixel converts a pixel position to its tile coordinate using
// floor division by the fixed tile size.
func TileFromPixel(px, py int32) TileCoord {
	tx := px / swen.TileSize
	ty := py / swen.TileSize
	if tx < 0 {
		tx = 0
	}
	if ty < 0 {
		ty = 0
	}
	return TileCoord{X: uint16(tx), Y: uint16(ty)}
}

// Pack folds the coordinate into a single sortable key; rows are the
// major axis so ascending packed order is the GPU's cache-coherent
// row-by-row access order.
func (c TileCoord) Pack() uint32 {
	return uint32(c.Y)<<16 | uint32(c.X)
}

// PixelX returns the pixel X coordinate of the tile's left edge.
func (c TileCoord) PixelX() int32 {
	return int32(c.X) * swen.TileSize
}

// PixelY returns the pixel Y coordinate of the tile's top edge.
func (c TileCoord) PixelY() int32 {
	return int32(c.Y) * swen.TileSize
}
