package swen

// Matrix is a 2D affine transformation in row-major order:
//
//	| A  B  E |
//	| C  D  F |
//
// This represents the transformation:
//
//	x' = A*x + B*y + E
//	y' = C*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float32
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: 0, F: 0}
}

// Translation creates a translation matrix.
func Translation(x, y float32) Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: x, F: y}
}

// Scaling creates a scaling matrix.
func Scaling(x, y float32) Matrix {
	return Matrix{A: x, B: 0, C: 0, D: y, E: 0, F: 0}
}

// IsIdentity reports whether the matrix is the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Multiply multiplies two matrices (m * other).
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.C,
		B: m.A*o.B + m.B*o.D,
		C: m.C*o.A + m.D*o.C,
		D: m.C*o.B + m.D*o.D,
		E: m.A*o.E + m.B*o.F + m.E,
		F: m.C*o.E + m.D*o.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float32) (float32, float32) {
	return m.A*x + m.B*y + m.E, m.C*x + m.D*y + m.F
}
