// Package updater sequences the end-to-end update pipeline and owns
// the stages with side effects: downloading the installer artifact and
// running it as a silent child process.
//
// The flow is strictly sequential: probe installed state, resolve the
// latest release, compare, and either stop (up to date) or match the
// architecture-specific installer, download it and run it. Every stage
// fails fast; no stage retries or swallows errors. The downloaded
// artifact is deleted after the install attempt regardless of outcome.
package updater
