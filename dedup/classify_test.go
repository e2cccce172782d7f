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
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func alnLine(name string, flag, pos int, cigar, qual string) string {
	return strings.Join([]string{
		name, strconv.Itoa(flag), "chr1", strconv.Itoa(pos), "60",
		cigar, "*", "0", "0", "ACGTACGTACGTACGTACGTACGTA", qual,
	}, "\t")
}

func TestLeadingSoftClip(t *testing.T) {
	cases := []struct {
		cigar string
		want  int32
	}{
		{"5S20M", 5},
		{"12S8M", 12},
		{"5s20M", 5},
		{"12S", 12},
		{"20M5S", 0},
		{"5M2S13M", 0},
		{"25M", 0},
		{"100S5M", 0},
		{"*", 0},
		{"", 0},
		{"S5M", 0},
	}
	for _, c := range cases {
		if got := LeadingSoftClip(c.cigar); got != c.want {
			t.Errorf("LeadingSoftClip(%q) = %v, want %v", c.cigar, got, c.want)
		}
	}
}

func TestPhredScore(t *testing.T) {
	cases := []struct {
		qual string
		want int32
	}{
		{"III", 120},
		{"!!!", 0},
		{"", 0},
		{"S", 50},
		{"q", 80},
		{"I!I", 80},
	}
	for _, c := range cases {
		if got := PhredScore(c.qual); got != c.want {
			t.Errorf("PhredScore(%q) = %v, want %v", c.qual, got, c.want)
		}
	}
}

func TestMoleculeID(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		want  string
		found bool
	}{
		{"HWI-ST354R:351:C0UPMACXX:6:2301:2151:AAGCTC", 6, "AAGCTC", true},
		{"HWI-ST354R:351:C0UPMACXX:6:2301:2151:AAGCTC^GGCTAA", 12, "AAGCTC^GGCTAA", true},
		{"HWI-ST354R:351:C0UPMACXX:6:2301:2151:AAGCTC-GGCTAA", 12, "AAGCTC-GGCTAA", true},
		{"AACTTG:HWI-ST354R:351:C0UPMACXX:6:2301:2151", 6, "AACTTG", true},
		{"HWI-ST354R:351:C0UPMACXX:6:2301:2151", 6, "", false},
		{"HWI-ST354R:351:2151:aagctc", 6, "", false},
		{"AACCGG:TTTTTTTT", 6, "TTTTTTTT", true},
		{"AAGCTC:GGCTAA", 6, "AAGCTC", true},
		{"", 6, "", false},
	}
	for _, c := range cases {
		got, found := MoleculeID(c.name, c.n)
		if got != c.want || found != c.found {
			t.Errorf("MoleculeID(%q, %v) = %q, %v, want %q, %v", c.name, c.n, got, found, c.want, c.found)
		}
	}
}

func TestClassifyFlags(t *testing.T) {
	classifier := &Classifier{IDLength: 6}
	cases := []struct {
		flag   int
		strand Strand
		unique bool
	}{
		{0, Forward, true},
		{16, Reverse, true},
		{4, Forward, false},
		{256, Forward, false},
		{272, Reverse, false},
		{1040, Reverse, true},
	}
	for _, c := range cases {
		cl := classifier.Classify(alnLine("r1:AAGCTC", c.flag, 100, "25M", "IIIII"), 1)
		if cl.Err != nil {
			t.Fatalf("Classify flag %v: %v", c.flag, cl.Err)
		}
		if cl.Strand != c.strand {
			t.Errorf("Classify flag %v: strand %c, want %c", c.flag, cl.Strand, c.strand)
		}
		if cl.Unique != c.unique {
			t.Errorf("Classify flag %v: unique %v, want %v", c.flag, cl.Unique, c.unique)
		}
	}
}

func TestClassifyAdjustedStart(t *testing.T) {
	classifier := &Classifier{IDLength: 6}
	leading := classifier.Classify(alnLine("r1:AAGCTC", 0, 100, "5S20M", "IIIII"), 1)
	if leading.AdjustedPos != 95 {
		t.Errorf("leading soft clip: adjusted start %v, want 95", leading.AdjustedPos)
	}
	trailing := classifier.Classify(alnLine("r1:AAGCTC", 0, 100, "20M5S", "IIIII"), 1)
	if trailing.AdjustedPos != 100 {
		t.Errorf("trailing soft clip: adjusted start %v, want 100", trailing.AdjustedPos)
	}
}

func TestClassifyMalformed(t *testing.T) {
	classifier := &Classifier{IDLength: 6}
	for _, line := range []string{
		"r1:AAGCTC\t0\tchr1\t100",
		strings.Replace(alnLine("r1:AAGCTC", 0, 100, "25M", "IIIII"), "\t0\t", "\tx\t", 1),
		strings.Replace(alnLine("r1:AAGCTC", 0, 100, "25M", "IIIII"), "\t100\t", "\tabc\t", 1),
	} {
		if cl := classifier.Classify(line, 7); cl.Err == nil {
			t.Errorf("Classify(%q) expected an error", line)
		} else if cl.Eligible() {
			t.Errorf("Classify(%q) must not be eligible", line)
		} else if cl.Ordinal != 7 {
			t.Errorf("Classify(%q) ordinal %v, want 7", line, cl.Ordinal)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	classifier := &Classifier{IDLength: 6}
	line := alnLine("r1:AAGCTC", 16, 100, "5S20M", "IIIIIIIIII")
	first := classifier.Classify(line, 3)
	second := classifier.Classify(line, 3)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("classifying the same line twice differs: %+v vs %+v", first, second)
	}
}
