package math

// Mat4 is a 4x4 matrix stored column by column, the layout instanced
// transform buffers expect. Element (row r, column c) is m[c*4+r], so the
// translation of an affine transform sits in m[12], m[13], m[14].
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns an orthographic projection of the box [left, right] x
// [bottom, top] x [-near, -far] onto clip space.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	w := right - left
	h := top - bottom
	d := far - near

	return Mat4{
		2 / w, 0, 0, 0,
		0, 2 / h, 0, 0,
		0, 0, -2 / d, 0,
		-(right + left) / w, -(top + bottom) / h, -(far + near) / d, 1,
	}
}

// LookAt returns a right-handed view matrix for a camera at eye looking at
// center.
func LookAt(eye, center, up Vec3) Mat4 {
	fwd := center.Sub(eye).Normalize()
	side := fwd.Cross(up).Normalize()
	camUp := side.Cross(fwd)

	return Mat4{
		side.X, camUp.X, -fwd.X, 0,
		side.Y, camUp.Y, -fwd.Y, 0,
		side.Z, camUp.Z, -fwd.Z, 0,
		-side.Dot(eye), -camUp.Dot(eye), fwd.Dot(eye), 1,
	}
}

// SetTranslation overwrites m with a pure translation in place.
func (m *Mat4) SetTranslation(x, y, z float32) {
	*m = Identity()
	m[12], m[13], m[14] = x, y, z
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Mul returns m * other, so other is applied first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for i := range out {
		col, row := i/4, i%4
		var sum float32
		for k := 0; k < 4; k++ {
			sum += m[k*4+row] * other[col*4+k]
		}
		out[i] = sum
	}
	return out
}

// TransformVec3 transforms the point v (w = 1) and divides by the
// resulting w unless it is zero.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	out := Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
	if w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]; w != 0 && w != 1 {
		out = Vec3{out.X / w, out.Y / w, out.Z / w}
	}
	return out
}

// Inverse returns the inverse of m, or the identity if m is singular.
func (m Mat4) Inverse() Mat4 {
	// 2x2 minors of columns 0-1 (s) and columns 2-3 (c).
	s0 := m[0]*m[5] - m[1]*m[4]
	s1 := m[0]*m[6] - m[2]*m[4]
	s2 := m[0]*m[7] - m[3]*m[4]
	s3 := m[1]*m[6] - m[2]*m[5]
	s4 := m[1]*m[7] - m[3]*m[5]
	s5 := m[2]*m[7] - m[3]*m[6]

	c0 := m[8]*m[13] - m[9]*m[12]
	c1 := m[8]*m[14] - m[10]*m[12]
	c2 := m[8]*m[15] - m[11]*m[12]
	c3 := m[9]*m[14] - m[10]*m[13]
	c4 := m[9]*m[15] - m[11]*m[13]
	c5 := m[10]*m[15] - m[11]*m[14]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity()
	}
	inv := 1 / det

	return Mat4{
		(m[5]*c5 - m[6]*c4 + m[7]*c3) * inv,
		(m[2]*c4 - m[1]*c5 - m[3]*c3) * inv,
		(m[13]*s5 - m[14]*s4 + m[15]*s3) * inv,
		(m[10]*s4 - m[9]*s5 - m[11]*s3) * inv,

		(m[6]*c2 - m[4]*c5 - m[7]*c1) * inv,
		(m[0]*c5 - m[2]*c2 + m[3]*c1) * inv,
		(m[14]*s2 - m[12]*s5 - m[15]*s1) * inv,
		(m[8]*s5 - m[10]*s2 + m[11]*s1) * inv,

		(m[4]*c4 - m[5]*c2 + m[7]*c0) * inv,
		(m[1]*c2 - m[0]*c4 - m[3]*c0) * inv,
		(m[12]*s4 - m[13]*s2 + m[15]*s0) * inv,
		(m[9]*s2 - m[8]*s4 - m[11]*s0) * inv,

		(m[5]*c1 - m[4]*c3 - m[6]*c0) * inv,
		(m[0]*c3 - m[1]*c1 + m[2]*c0) * inv,
		(m[13]*s1 - m[12]*s3 - m[14]*s0) * inv,
		(m[8]*s3 - m[9]*s1 + m[10]*s0) * inv,
	}
}
