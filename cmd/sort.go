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

package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/devin-d/samdedup/sam"
)

// SortHelp is the help string for the samdedup sort command.
const SortHelp = "\nsort parameters:\n" +
	"samdedup sort sam-file sorted-file\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"[--profile name]\n"

// Sort implements the samdedup sort command, which sorts a SAM/BAM
// file by leftmost mapping position through samtools.
func Sort() error {
	var flags flag.FlagSet
	var (
		logPath string
		timed   bool
		profile string
	)
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")

	parseFlags(flags, 4, SortHelp)
	input := getFilename(os.Args[2], SortHelp)
	output := getFilename(os.Args[3], SortHelp)
	setLogOutput(logPath)

	if !checkExist("", input) {
		fmt.Fprint(os.Stderr, SortHelp)
		os.Exit(1)
	}

	return timedRun(timed, profile, "Sorting input by mapping position.", 1, func() error {
		return sam.SortFile(input, output)
	})
}
