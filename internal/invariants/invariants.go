// Package invariants exposes a single Enabled flag gated by the
// "invariants" build tag, in the spirit of pebble's internal/invariants
// package. arbor uses it to toggle an expensive structural-soundness pass
// (P1 parent/child back-pointer checks and root uniqueness) after every
// structural mutator call: on only in builds with the "invariants" tag
// (go test -tags invariants), off otherwise so the checks cost nothing.
package invariants
