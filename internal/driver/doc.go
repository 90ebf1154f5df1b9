// Package driver supplies the per-tick time source for a
// [transition.Controller] outside of an interactive loop.
//
// # Example
//
//	ctrl := transition.New(rig, coll)
//	ctrl.TransitionToName("Options")
//	track, err := driver.New().Run(ctx, ctrl, driver.DefaultConfig())
//
// A [Track] holds one [Sample] per tick plus any [Metric] values collected
// along the way.
package driver
