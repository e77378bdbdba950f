package math

// Float is the set of scalar types the interpolation helpers accept.
type Float interface {
	~float32 | ~float64
}

// Lerp blends a and b linearly: (1-t)*a + t*b.
// t is not clamped; callers clamp when they need a monotonic result.
func Lerp[T Float](a, b, t T) T {
	return (1.0-t)*a + t*b
}

// SqLerp blends a and b with the quadratic ease-in factor t².
func SqLerp[T Float](a, b, t T) T {
	return Lerp(a, b, t*t)
}

// CubeLerp blends a and b with the cubic ease-out factor 1-(1-t)³.
func CubeLerp[T Float](a, b, t T) T {
	inv := 1.0 - t
	return Lerp(a, b, 1.0-inv*inv*inv)
}

// Clamp01 limits t to [0, 1].
func Clamp01[T Float](t T) T {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
