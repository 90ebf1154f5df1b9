// Package transition drives a camera-like target between poses.
//
// A [Controller] is a two-state machine, Idle and Transitioning. Callers arm
// it with [Controller.TransitionTo] or jump with [Controller.SnapTo], and the
// host loop calls [Controller.Advance] once per tick with the elapsed
// seconds. Each tick blends the target from the transform it had when the
// transition started toward the destination pose, shaped by the pose's
// curve, and writes the destination exactly once the duration has elapsed.
//
// # Supersession
//
// Starting a transition or snapping while another transition is active
// discards the old one immediately. Nothing of the old transition is written
// after that point and observers are never told about it.
//
// # Thread Safety
//
// Controller is NOT thread-safe. It expects the goroutine that issues
// TransitionTo/SnapTo to also call Advance, as a game or UI loop does.
package transition
