// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

import (
	"fmt"
	"log"
	"os"
)

// Logger defines an interface for writing log messages, matching the shape
// of pebble's internal/base.Logger so host applications that already carry
// a pebble-style logger can pass it straight through.
type Logger interface {
	Infof(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// DefaultLogger logs to the Go standard library log package.
type DefaultLogger struct{}

// Infof implements Logger.
func (DefaultLogger) Infof(format string, args ...interface{}) {
	_ = log.Output(2, fmt.Sprintf(format, args...))
}

// Fatalf implements Logger.
func (DefaultLogger) Fatalf(format string, args ...interface{}) {
	_ = log.Output(2, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// ReclaimMode selects how a Tree's arena reclaims freed slots.
type ReclaimMode int

const (
	// Eager reuses freed slot indices immediately (compact, but a
	// previously issued NodeIdx for a removed node becomes ErrRemovedNode
	// as soon as its slot is reused by a new node).
	Eager ReclaimMode = iota

	// Lazy never reuses a freed slot index, so external NodeIdx values
	// stay dereferenceable (reporting ErrRemovedNode, never silently
	// resolving to an unrelated node) for as long as the Tree lives.
	Lazy
)

// String implements fmt.Stringer.
func (m ReclaimMode) String() string {
	switch m {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	default:
		return "unknown"
	}
}

// defaultChunkSize is the number of slots allocated per arena growth chunk
// when Options.ChunkSize is left at zero.
const defaultChunkSize = 256

// Options configures a Tree at construction. The zero value is valid and
// equivalent to NewOptions().
type Options struct {
	// Reclaim selects Eager or Lazy slot reclamation. Default: Eager.
	Reclaim ReclaimMode

	// ChunkSize is the arena's growth granularity, in slots. Default: 256.
	ChunkSize int

	// Logger receives diagnostic messages, currently limited to a warning
	// emitted the first time a Lazy-mode tree's arena capacity crosses
	// growth-warning thresholds driven by repeated pruning without a
	// reclaim. Default: DefaultLogger{}.
	Logger Logger
}

// NewOptions returns an Options populated with defaults.
func NewOptions() *Options {
	o := &Options{}
	o.EnsureDefaults()
	return o
}

// EnsureDefaults fills in zero-valued fields with their defaults, mutating
// o in place and also returning it for chaining.
func (o *Options) EnsureDefaults() *Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = defaultChunkSize
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	return o
}

func (o *Options) clone() *Options {
	if o == nil {
		return NewOptions()
	}
	cp := *o
	return cp.EnsureDefaults()
}
