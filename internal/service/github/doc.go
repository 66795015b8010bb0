// Package github resolves the latest published release of a repository
// through the GitHub releases API.
//
// The client issues exactly one request per call and maps the loosely
// typed JSON payload into the strict domain model at the boundary,
// failing fast on anything missing or malformed.
package github
