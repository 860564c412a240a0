// Package config holds process-wide toggles consulted by debug rendering
// and test harnesses. It carries no business logic of its own.
package config

// IsTestMode is a toggle for test harnesses. When set, TVar.String renders
// every type variable as "t?" instead of its generated id, so golden output
// stays stable. Mark ids are not normalized. It is false unless a caller
// sets it.
var IsTestMode = false

// IsDebugMode indicates a developer-facing dump is in progress (cmd/tydump
// sets it). It enables the same TVar-name normalization as IsTestMode and
// nothing else.
var IsDebugMode = false
