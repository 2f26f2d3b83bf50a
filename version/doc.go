// Package version exposes build version information. The client uses it to
// build its default User-Agent header.
package version
