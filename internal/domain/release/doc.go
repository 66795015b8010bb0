// Package release holds the pure domain model of the update pipeline:
// version tuples and their total ordering, architectures, release
// assets with installer matching, and the update decision derived from
// the installed state and the latest published release.
//
// Nothing here performs I/O; every function is deterministic.
package release
