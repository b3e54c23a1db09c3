package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// Element (col, row) lives at index row+col*4. For a transform matrix the
// first three columns are the basis vectors and column 3 is the translation.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale creates a scaling matrix that leaves W untouched.
func Scale(v Vec3) Mat4 {
	return Enlargement(v.X, v.Y, v.Z, 1)
}

// Enlargement creates a diagonal matrix with the given factors.
func Enlargement(x, y, z, w float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, w,
	}
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// YawPitchRoll composes RotateY(yaw) · RotateX(pitch) · RotateZ(roll).
// Roll is applied first and yaw last. Model and camera transforms depend on
// this order.
func YawPitchRoll(yaw, pitch, roll float64) Mat4 {
	return RotateY(yaw).Mul(RotateX(pitch)).Mul(RotateZ(roll))
}

// RotateEuler is YawPitchRoll with the angles taken from a rotation vector
// (X = pitch, Y = yaw, Z = roll). W is ignored.
func RotateEuler(r Vec4) Mat4 {
	return YawPitchRoll(r.Y, r.X, r.Z)
}

// Mul multiplies two matrices: a * b. The result applies b first, then a.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// Add returns the element-wise sum.
//
//nolint:st1016 // a+b naming convention is clearer for matrix operations
func (a Mat4) Add(b Mat4) Mat4 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Sub returns the element-wise difference.
//
//nolint:st1016 // a-b naming convention is clearer for matrix operations
func (a Mat4) Sub(b Mat4) Mat4 {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms a Vec3 as a point (w=1) and drops the resulting W.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(v.Point()).Vec3()
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(o Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}
