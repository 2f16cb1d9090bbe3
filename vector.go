package swen

// Vector is a coordinate in parent space.
// Components are signed so that nodes may be positioned off-screen.
type Vector struct {
	X, Y int32
}

// Add returns the component-wise sum of two vectors.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// IsPositive reports whether both components are strictly positive.
// Sizes must satisfy this; positions need not.
func (v Vector) IsPositive() bool {
	return v.X > 0 && v.Y > 0
}

// Bounds is an axis-aligned rectangle in world space.
type Bounds struct {
	X, Y          int32
	Width, Height int32
}

// IsEmpty reports whether the bounds cover no pixels.
func (b Bounds) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// MaxX returns the exclusive right edge.
func (b Bounds) MaxX() int32 { return b.X + b.Width }

// MaxY returns the exclusive bottom edge.
func (b Bounds) MaxY() int32 { return b.Y + b.Height }

// Intersects reports whether two bounds overlap.
func (b Bounds) Intersects(o Bounds) bool {
	return b.X < o.MaxX() && o.X < b.MaxX() &&
		b.Y < o.MaxY() && o.Y < b.MaxY()
}

// Union returns the smallest bounds containing both rectangles.
// An empty rectangle contributes nothing.
func (b Bounds) Union(o Bounds) Bounds {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	x := min(b.X, o.X)
	y := min(b.Y, o.Y)
	return Bounds{
		X:      x,
		Y:      y,
		Width:  max(b.MaxX(), o.MaxX()) - x,
		Height: max(b.MaxY(), o.MaxY()) - y,
	}
}

// ContainsTile reports whether the bounds fully cover the tile whose
// top-left pixel is (tx, ty), for the fixed TileSize.
func (b Bounds) ContainsTile(tx, ty int32) bool {
	return b.X <= tx && b.Y <= ty &&
		b.MaxX() >= tx+TileSize && b.MaxY() >= ty+TileSize
}
