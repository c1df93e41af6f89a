// Package debug exposes the build-time debug flag shared by osac components.
//
// Build with -tags=debug to keep logging enabled under go test.
package debug
