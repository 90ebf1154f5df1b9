// Package pose defines the named camera viewpoints the transition engine
// moves between, and the ordered collection they are looked up in.
//
// All operations tolerate missing input: a nil pose, a nil target, an
// unknown name or an out-of-range index turns the call into a no-op rather
// than an error. Reporting such cases is left to the calling tool.
package pose
