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
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/google/uuid"
)

/*
SortFile sorts a SAM/BAM file by leftmost mapping position by
delegating to samtools sort. Unlike per-record problems, a failing
sort aborts the whole run: deduplication must not proceed on an
unsorted or partially written file, so the returned error carries the
tool's own diagnostic output.
*/
func SortFile(name, output string) error {
	args := []string{"sort", "-O", "sam",
		"-@", strconv.FormatInt(int64(runtime.GOMAXPROCS(0)), 10),
		"-o", output, name}
	cmd := exec.Command("samtools", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("samtools sort on %v failed: %v: %s", name, err, out)
	}
	return nil
}

// TempSortName returns a fresh name for the output of SortFile when
// the caller does not provide one.
func TempSortName() string {
	return filepath.Join(os.TempDir(), "samdedup-sort-"+uuid.New().String()+".sam")
}
