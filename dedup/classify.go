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

import (
	"github.com/willf/bitset"

	"github.com/devin-d/samdedup/sam"
)

// Strand is the mapping orientation of a record.
type Strand byte

const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

/*
LeadingSoftClip returns the length of the soft-clip operation at the
start of a CIGAR string, or 0 when the first operation is not a one-
or two-digit soft clip. Only a leading clip shifts the leftmost
mapping position; clips elsewhere in the string are ignored, and
malformed strings degrade to 0.
*/
func LeadingSoftClip(cigar string) int32 {
	if len(cigar) >= 2 && isDigit(cigar[0]) {
		if cigar[1] == 'S' || cigar[1] == 's' {
			return int32(cigar[0] - '0')
		}
		if len(cigar) >= 3 && isDigit(cigar[1]) && (cigar[2] == 'S' || cigar[2] == 's') {
			return int32(cigar[0]-'0')*10 + int32(cigar[1]-'0')
		}
	}
	return 0
}

func isDigit(c byte) bool { return ('0' <= c) && (c <= '9') }

/*
PhredScore sums the Phred+33 base qualities over the full quality
string. The empty string scores 0. Scoring every base keeps the
comparison between duplicates meaningful for reads of any length.
*/
func PhredScore(qual string) (score int32) {
	for i := 0; i < len(qual); i++ {
		score += int32(qual[i]) - 33
	}
	return score
}

// idAlphabet is the character class of molecular identifiers:
// uppercase bases plus the separators that join dual indexes.
// Lowercase bases never match.
var idAlphabet = func() *bitset.BitSet {
	b := bitset.New(256)
	for _, c := range []byte("ACGTN^-") {
		b.Set(uint(c))
	}
	return b
}()

/*
MoleculeID returns the longest run of molecular-identifier characters
in a read name whose length is at least n, and whether such a run
exists. Two indexes joined by ^ or - count as one identifier, not
two. When several runs are equally long, the first one wins. The
boolean result distinguishes "no identifier found" from an empty
identifier.
*/
func MoleculeID(name string, n int) (string, bool) {
	var best string
	found := false
	start := -1
	for i := 0; i <= len(name); i++ {
		if i < len(name) && idAlphabet.Test(uint(name[i])) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if run := name[start:i]; len(run) >= n && len(run) > len(best) {
				best = run
				found = true
			}
			start = -1
		}
	}
	return best, found
}

/*
A Classification holds the facts derived from one record that the
deduplication decision needs. Classifying the same line twice yields
identical values.
*/
type Classification struct {
	Record      *sam.Record
	Ordinal     int
	Err         error
	AdjustedPos int32
	Score       int32
	Strand      Strand
	Unique      bool
	MoleculeID  string
	HasID       bool
}

/*
Eligible reports whether the record takes part in deduplication: it
must be parseable, mapped without a secondary alignment, and carry a
molecular identifier. Ineligible records are still fully classified
so that callers can log them.
*/
func (cl *Classification) Eligible() bool {
	return cl.Err == nil && cl.Unique && cl.HasID
}

// A Classifier derives Classifications. IDLength is the expected
// length of the molecular identifier in the read names (the combined
// length of both indexes when dual indexes are used).
type Classifier struct {
	IDLength int
}

/*
Classify derives all deduplication facts for one alignment line.
ordinal is the 1-based position of the line in the alignment section
of the input; it is carried into the drop diagnostics.
*/
func (c *Classifier) Classify(line string, ordinal int) Classification {
	rec, err := sam.ParseRecord(line)
	if err != nil {
		return Classification{Ordinal: ordinal, Err: err}
	}
	cl := Classification{Record: rec, Ordinal: ordinal}
	cl.AdjustedPos = rec.POS - LeadingSoftClip(rec.CIGAR)
	cl.Score = PhredScore(rec.QUAL)
	if rec.IsReversed() {
		cl.Strand = Reverse
	} else {
		cl.Strand = Forward
	}
	cl.Unique = !rec.IsUnmapped() && !rec.IsSecondary()
	cl.MoleculeID, cl.HasID = MoleculeID(rec.QNAME, c.IDLength)
	return cl
}
