package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxNormalizedTime is the largest value below 1.0, the upper bound of a clip loop
var MaxNormalizedTime = math.Nextafter(1, 0)

// Pose is a position and orientation pair, local or world depending on the caller
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose returns origin with no rotation
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// Compose returns local expressed in the space parent lives in
func Compose(parent, local Pose) Pose {
	return Pose{
		Position: parent.Rotation.Rotate(local.Position).Add(parent.Position),
		Rotation: parent.Rotation.Mul(local.Rotation).Normalize(),
	}
}

// LerpVec interpolates linearly with w clamped to [0,1]
// The (1-w)·a + w·b form returns a and b bit-exact at the endpoints
func LerpVec(a, b mgl64.Vec3, w float64) mgl64.Vec3 {
	if w <= 0 {
		return a
	}
	if w >= 1 {
		return b
	}
	return a.Mul(1 - w).Add(b.Mul(w))
}

// SlerpQuat interpolates orientation along the shortest arc, w clamped to [0,1]
func SlerpQuat(a, b mgl64.Quat, w float64) mgl64.Quat {
	if w <= 0 {
		return a
	}
	if w >= 1 {
		return b
	}
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, w)
}

// BlendPose interpolates both components of a pose by the same weight
func BlendPose(from, to Pose, w float64) Pose {
	return Pose{
		Position: LerpVec(from.Position, to.Position, w),
		Rotation: SlerpQuat(from.Rotation, to.Rotation, w),
	}
}

// VecApproxEqual compares two points by absolute distance
// mgl64 ApproxEqualThreshold is relative per component and never matches a near-zero against an exact zero
func VecApproxEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return a.Sub(b).Len() <= epsilon
}

// PoseApproxEqual compares positions by distance and rotations as orientations
func PoseApproxEqual(a, b Pose, epsilon float64) bool {
	return VecApproxEqual(a.Position, b.Position, epsilon) &&
		a.Rotation.OrientationEqualThreshold(b.Rotation, epsilon)
}

// EulerDegrees builds a rotation from XYZ Euler angles in degrees
func EulerDegrees(x, y, z float64) mgl64.Quat {
	return mgl64.AnglesToQuat(mgl64.DegToRad(x), mgl64.DegToRad(y), mgl64.DegToRad(z), mgl64.XYZ)
}
