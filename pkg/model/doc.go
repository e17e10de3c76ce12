// Package model exposes the canonical Field descriptor consumed by every
// engine in the module. Descriptors are produced by the schema normalizer in
// internal/model and are immutable by convention: engines read them, the
// template clone operation copies them, and nothing mutates them in place.
// The ValueType set is closed; dispatch tables in the option resolver,
// validation engine, and submission transformer are keyed by it so adding a
// type is a compile-checked, localized change.
package model
