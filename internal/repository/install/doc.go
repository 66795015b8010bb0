// Package install reads the installed state of the target application
// from the host configuration store.
//
// The Prober checks the application's uninstall registration under the
// native subtree first and the WOW6432Node compatibility subtree
// second, inferring the architecture from which subtree yielded the
// hit. The Store interface isolates the registry so the probe logic is
// testable on any platform.
package install
