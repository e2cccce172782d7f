// samdedup: a tool for removing PCR duplicate reads from SAM files.
// Copyright (c) 2017-2021 Devin Dinwiddie.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// General Public License for more details.

// You should have received a copy of the GNU General Public License
// along with this program. If not, see
// <https://github.com/devin-d/samdedup/blob/master/LICENSE.txt>.

package dedup

/*
A Key identifies one group of PCR duplicates: reads with the same
molecular identifier, the same soft-clip-adjusted start position, and
the same strand orientation are amplification copies of the same
original molecule.
*/
type Key struct {
	MoleculeID  string
	AdjustedPos int32
	Strand      Strand
}

type entry struct {
	score int32
	line  string
}

/*
A Table keeps, for every Key, the best-quality record line seen so
far. Lines drain in key first-insertion order; replacing a record
with a better copy updates its slot in place without moving the key.
The table grows with the number of distinct keys, which is the memory
ceiling of a run (bounded by the input size when the input is not
position-sorted).
*/
type Table struct {
	index   map[Key]int
	entries []entry
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{index: make(map[Key]int)}
}

/*
Add records one eligible classification. A new key inserts its
record; a strictly higher score replaces the stored record; ties and
lower scores keep the existing record, so the first record seen wins
among equals.
*/
func (t *Table) Add(cl *Classification) {
	key := Key{cl.MoleculeID, cl.AdjustedPos, cl.Strand}
	if i, found := t.index[key]; found {
		if cl.Score > t.entries[i].score {
			t.entries[i] = entry{cl.Score, cl.Record.Line}
		}
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, entry{cl.Score, cl.Record.Line})
}

// Len returns the number of distinct keys in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lines returns the surviving record lines.
func (t *Table) Lines() []string {
	lines := make([]string, len(t.entries))
	for i, e := range t.entries {
		lines[i] = e.line
	}
	return lines
}
