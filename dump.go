// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// DumpSlots renders the tree's arena as an ASCII table (slot, generation,
// occupied, value, parent, back-position, children) for debugging. Slot order
// matches Tree.All's arena order, not any traversal order.
func (t *Tree[T, S]) DumpSlots() string {
	var buf bytes.Buffer
	tbl := tablewriter.NewWriter(&buf)
	tbl.SetHeader([]string{"slot", "generation", "occupied", "value", "parent", "backpos", "children"})

	n := t.arena.Capacity()
	for slot := 0; slot < n; slot++ {
		gen, err := t.arena.Generation(slot)
		if err != nil {
			continue
		}
		if !t.arena.Occupied(slot) {
			tbl.Append([]string{
				fmt.Sprintf("%d", slot),
				fmt.Sprintf("%d", gen),
				"vacant", "-", "-", "-", "-",
			})
			continue
		}
		node := t.mustGet(slot)
		parent := "-"
		if node.parent != noChild {
			parent = fmt.Sprintf("%d", node.parent)
		}
		var children []string
		node.children.positions(func(_ int, kid childRef) bool {
			children = append(children, fmt.Sprintf("%d", kid))
			return true
		})
		childStr := "-"
		if len(children) > 0 {
			childStr = fmt.Sprintf("%v", children)
		}
		tbl.Append([]string{
			fmt.Sprintf("%d", slot),
			fmt.Sprintf("%d", gen),
			"occupied",
			fmt.Sprintf("%v", node.value),
			parent,
			fmt.Sprintf("%d", node.backPos),
			childStr,
		})
	}
	tbl.Render()
	return buf.String()
}
