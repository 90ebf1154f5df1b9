// Package curve provides easing curves that shape a pose transition.
//
// A [Curve] maps normalized time t in [0, 1] to an interpolation weight.
// Weights are not confined to [0, 1]: overshoot curves such as
// "ease_out_back" deliberately leave the range before settling on 1.
//
// Curves are referenced from configuration by preset name ([Lookup]) or by
// explicit keyframes ([Keyframed]); [Spec] handles both YAML forms.
package curve
