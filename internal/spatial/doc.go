// Package spatial provides the transform primitives shared by the pose
// engine and its tooling.
//
//   - [Target]: anything with a settable world position and orientation
//   - [Rig]: a plain in-memory camera transform implementing [Target]
//   - [Lerp], [Slerp]: weight-based interpolation that extrapolates for
//     weights outside [0, 1]
//
// Vectors and quaternions are [mgl64.Vec3] and [mgl64.Quat].
package spatial
