package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis. The ground plane is X/Z.
var Up = mgl64.Vec3{0, 1, 0}

// Forward is the local forward axis of an unrotated entity.
var Forward = mgl64.Vec3{0, 0, 1}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SanitizeVec2 returns the zero vector when any component is NaN or Inf.
func SanitizeVec2(v mgl64.Vec2) mgl64.Vec2 {
	if !Finite(v[0]) || !Finite(v[1]) {
		return mgl64.Vec2{}
	}
	return v
}

// SanitizeVec3 returns the zero vector when any component is NaN or Inf.
func SanitizeVec3(v mgl64.Vec3) mgl64.Vec3 {
	if !Finite(v[0]) || !Finite(v[1]) || !Finite(v[2]) {
		return mgl64.Vec3{}
	}
	return v
}

func LenSq2(v mgl64.Vec2) float64 {
	return v.Dot(v)
}

func LenSq3(v mgl64.Vec3) float64 {
	return v.Dot(v)
}

// ClampMagnitude2 scales v down so its length does not exceed max.
func ClampMagnitude2(v mgl64.Vec2, max float64) mgl64.Vec2 {
	if max <= 0 {
		return mgl64.Vec2{}
	}
	sq := LenSq2(v)
	if sq <= max*max {
		return v
	}
	return v.Mul(max / math.Sqrt(sq))
}

// Normalize3 returns v with unit length, or zero when v is (nearly) zero.
func Normalize3(v mgl64.Vec3) mgl64.Vec3 {
	sq := LenSq3(v)
	if sq < 1e-12 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / math.Sqrt(sq))
}

// Normalize2 returns v with unit length, or zero when v is (nearly) zero.
func Normalize2(v mgl64.Vec2) mgl64.Vec2 {
	sq := LenSq2(v)
	if sq < 1e-12 {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / math.Sqrt(sq))
}

// Flatten drops the vertical component and renormalizes.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return Normalize3(mgl64.Vec3{v[0], 0, v[2]})
}

// LookRotation returns the yaw-only rotation whose forward axis points along
// dir projected onto the ground plane. A zero direction yields identity.
func LookRotation(dir mgl64.Vec3) mgl64.Quat {
	flat := Flatten(dir)
	if flat == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return YawRotation(math.Atan2(flat[0], flat[2]))
}

// YawRotation rotates around the up axis by yaw radians.
func YawRotation(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, Up)
}

// Yaw extracts the heading angle of q in radians.
func Yaw(q mgl64.Quat) float64 {
	f := q.Rotate(Forward)
	return math.Atan2(f[0], f[2])
}

// Slerp interpolates along the shortest arc between a and b.
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp(t, 0, 1)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	if t >= 1 {
		return b.Normalize()
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}
