package core

import "math"

// Mat4 is a 4x4 matrix stored as rows: M[row][col].
// Points are column vectors, so transforms compose right to left.
type Mat4 [4][4]float64

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns m * other
func (m Mat4) Multiply(other Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = m[r][0]*other[0][c] + m[r][1]*other[1][c] + m[r][2]*other[2][c] + m[r][3]*other[3][c]
		}
	}
	return out
}

// MultiplyPoint transforms p as a point (w=1) and performs the perspective divide
func (m Mat4) MultiplyPoint(p Vec3) Vec3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Perspective builds a right-handed perspective projection.
// fovY is the vertical field of view in radians.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	var m Mat4
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = (far + near) / (near - far)
	m[2][3] = 2 * far * near / (near - far)
	m[3][2] = -1
	return m
}

// LookAt builds a view matrix whose rows are the camera basis, translated so that
// position maps to the origin. The camera looks down -Z in view space.
func LookAt(position, forward, up Vec3) Mat4 {
	f := forward.Normalize()
	r := f.Cross(up).Normalize()
	u := r.Cross(f)
	return Mat4{
		{r.X, r.Y, r.Z, -r.Dot(position)},
		{u.X, u.Y, u.Z, -u.Dot(position)},
		{-f.X, -f.Y, -f.Z, f.Dot(position)},
		{0, 0, 0, 1},
	}
}
