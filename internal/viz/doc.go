// Package viz is a terminal previewer for camera pose transitions.
//
// [Model] is a Bubble Tea program that draws the pose collection as a
// top-down braille map of the x/z plane and lets the user fire transitions
// and snaps from the keyboard:
//
//	1-9       transition to the nth pose
//	shift+1-9 snap to the nth pose
//	tab       toggle clamp / extrapolate overshoot
//	t         cycle themes
//	c         clear the trail
//	s         capture the camera as a new pose (see [Model.WithCapture])
//	q         quit
//
// The controller is advanced once per 60 Hz tick.
package viz
