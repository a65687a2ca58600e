// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package treetest provides shared test-failure formatting for arbor's own
// test suite: pretty-printed structural diffs between two linearized
// sequences, following the pairing of github.com/kr/pretty and
// github.com/pmezard/go-difflib that pebble's own tests use for richer
// failure output than reflect.DeepEqual alone gives.
package treetest

import (
	"fmt"
	"strings"

	"github.com/kr/pretty"
	"github.com/pmezard/go-difflib/difflib"
)

// DiffSequences renders a unified diff between the %#v-ish pretty-printed
// forms of got and want, one element per line, suitable for embedding in a
// t.Fatalf/t.Errorf message.
func DiffSequences[T any](got, want []T) string {
	a := prettyLines(got)
	b := prettyLines(want)
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: "got",
		ToFile:   "want",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("got  %# v\nwant %# v", pretty.Formatter(got), pretty.Formatter(want))
	}
	return diff
}

// DiffValues renders the field-by-field difference between two values of
// the same type, in the style of pretty.Diff (used by pebble's own
// version_edit_test.go to explain a reflect.DeepEqual mismatch).
func DiffValues(got, want any) string {
	d := pretty.Diff(got, want)
	if len(d) == 0 {
		return ""
	}
	return strings.Join(d, "\n")
}

func prettyLines[T any](items []T) []string {
	lines := make([]string, len(items))
	for i, v := range items {
		lines[i] = fmt.Sprintf("%# v\n", pretty.Formatter(v))
	}
	return lines
}
