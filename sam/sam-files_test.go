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

package sam

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sam")
	if err := ioutil.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSkipHeaderAndFetch(t *testing.T) {
	path := writeTestFile(t,
		"@HD\tVN:1.5\tSO:coordinate\n"+
			"@SQ\tSN:chr1\tLN:248956422\n"+
			"line1\nline2\r\nline3\n")
	input, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := input.Close(); err != nil {
			t.Error(err)
		}
	}()
	lines, err := input.SkipHeader()
	if err != nil {
		t.Fatal(err)
	}
	if lines != 2 {
		t.Errorf("skipped %v header lines, want 2", lines)
	}
	if fetched := input.Fetch(10); fetched != 3 {
		t.Errorf("fetched %v lines, want 3", fetched)
	}
	batch := input.Data().([]string)
	want := []string{"line1", "line2", "line3"}
	for i, line := range want {
		if batch[i] != line {
			t.Errorf("batch[%v] = %q, want %q", i, batch[i], line)
		}
	}
	if input.Fetch(10) != 0 {
		t.Error("expected no lines after end of input")
	}
	if input.Err() != nil {
		t.Errorf("unexpected source error: %v", input.Err())
	}
}

func TestFetchBatchBoundaries(t *testing.T) {
	path := writeTestFile(t, "a\nb\nc\nd\ne\n")
	input, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := input.Close(); err != nil {
			t.Error(err)
		}
	}()
	if fetched := input.Fetch(2); fetched != 2 {
		t.Errorf("fetched %v lines, want 2", fetched)
	}
	first := input.Data().([]string)
	if fetched := input.Fetch(2); fetched != 2 {
		t.Errorf("fetched %v lines, want 2", fetched)
	}
	second := input.Data().([]string)
	if first[0] != "a" || first[1] != "b" || second[0] != "c" || second[1] != "d" {
		t.Errorf("batches overlap or reuse storage: %v %v", first, second)
	}
	if fetched := input.Fetch(2); fetched != 1 {
		t.Errorf("fetched %v lines, want 1", fetched)
	}
}

func TestHeaderOnlyFile(t *testing.T) {
	path := writeTestFile(t, "@HD\tVN:1.5\n")
	input, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := input.Close(); err != nil {
			t.Error(err)
		}
	}()
	lines, err := input.SkipHeader()
	if err != nil {
		t.Fatal(err)
	}
	if lines != 1 {
		t.Errorf("skipped %v header lines, want 1", lines)
	}
	if input.Fetch(10) != 0 {
		t.Error("expected no alignment lines")
	}
}

func TestWriteLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sam")
	output, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := output.WriteLine("line1"); err != nil {
		t.Fatal(err)
	}
	if err := output.WriteLine("line2"); err != nil {
		t.Fatal(err)
	}
	if err := output.Close(); err != nil {
		t.Fatal(err)
	}
	content, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "line1\nline2\n" {
		t.Errorf("unexpected output content %q", content)
	}
}
