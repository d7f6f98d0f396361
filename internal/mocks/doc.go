// Package mocks provides hand-written test doubles for the service interfaces.
// Each mock can be driven by per-method function fields or by default return
// values, and records every call for later assertions.
package mocks
