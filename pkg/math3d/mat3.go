package math3d

import "math"

// Mat3 is a 3x3 column-major matrix. Element (col, row) is at row+col*3.
type Mat3 [9]float64

// Mat2 is a 2x2 column-major matrix. Element (col, row) is at row+col*2.
type Mat2 [4]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Enlargement3 creates a 3x3 diagonal scaling matrix.
func Enlargement3(x, y, z float64) Mat3 {
	return Mat3{
		x, 0, 0,
		0, y, 0,
		0, 0, z,
	}
}

// Rotate3X creates a 3x3 rotation around the X axis.
func Rotate3X(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		1, 0, 0,
		0, c, s,
		0, -s, c,
	}
}

// Rotate3Y creates a 3x3 rotation around the Y axis.
func Rotate3Y(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	}
}

// Rotate3Z creates a 3x3 rotation around the Z axis.
func Rotate3Z(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[row+k*3] * b[k+col*3]
			}
			m[row+col*3] = sum
		}
	}
	return m
}

// Add returns the element-wise sum.
//
//nolint:st1016 // a+b naming convention is clearer for matrix operations
func (a Mat3) Add(b Mat3) Mat3 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Sub returns the element-wise difference.
//
//nolint:st1016 // a-b naming convention is clearer for matrix operations
func (a Mat3) Sub(b Mat3) Mat3 {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// MulVec3 transforms a Vec3.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Identity2 returns the 2x2 identity matrix.
func Identity2() Mat2 {
	return Mat2{1, 0, 0, 1}
}

// Enlargement2 creates a 2x2 diagonal scaling matrix.
func Enlargement2(x, y float64) Mat2 {
	return Mat2{x, 0, 0, y}
}

// Rotate2 creates a 2D rotation by angle radians (counter-clockwise).
func Rotate2(angle float64) Mat2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat2{c, s, -s, c}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat2) Mul(b Mat2) Mat2 {
	return Mat2{
		a[0]*b[0] + a[2]*b[1],
		a[1]*b[0] + a[3]*b[1],
		a[0]*b[2] + a[2]*b[3],
		a[1]*b[2] + a[3]*b[3],
	}
}

// Add returns the element-wise sum.
//
//nolint:st1016 // a+b naming convention is clearer for matrix operations
func (a Mat2) Add(b Mat2) Mat2 {
	return Mat2{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// Sub returns the element-wise difference.
//
//nolint:st1016 // a-b naming convention is clearer for matrix operations
func (a Mat2) Sub(b Mat2) Mat2 {
	return Mat2{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// MulVec2 transforms a Vec2.
func (m Mat2) MulVec2(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[2]*v.Y,
		m[1]*v.X + m[3]*v.Y,
	}
}

// Transpose returns the transposed matrix.
func (m Mat2) Transpose() Mat2 {
	return Mat2{m[0], m[2], m[1], m[3]}
}
