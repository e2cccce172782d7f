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
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/devin-d/samdedup/dedup"
	"github.com/devin-d/samdedup/sam"
)

// DedupHelp is the help string for the samdedup dedup command.
const DedupHelp = "\ndedup parameters:\n" +
	"samdedup dedup sam-file\n" +
	"--length number\n" +
	"[--output sam-file]\n" +
	"[--sort]\n" +
	"[--sorted-name sam-file]\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"[--profile name]\n"

/*
Dedup implements the samdedup dedup command. It removes PCR duplicate
reads from a SAM file: among the uniquely mapped reads that share a
soft-clip-adjusted start position, a strand, and a molecular
identifier of the given length in their read name, only the read with
the highest quality score is written to the output. The input must be
sorted by mapping position for bounded memory use; --sort delegates
the sorting to samtools first.
*/
func Dedup() error {
	var flags flag.FlagSet
	var (
		length     int
		output     string
		sortInput  bool
		sortedName string
		logPath    string
		timed      bool
		profile    string
	)
	flags.IntVar(&length, "length", 0, "length of the molecular identifier in the read names (combined length for dual indexes)")
	flags.StringVar(&output, "output", "", "output SAM file")
	flags.BoolVar(&sortInput, "sort", false, "sort the input file by mapping position first")
	flags.StringVar(&sortedName, "sorted-name", "", "name for the sorted intermediate file")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")

	parseFlags(flags, 3, DedupHelp)
	input := getFilename(os.Args[2], DedupHelp)
	setLogOutput(logPath)

	valid := checkExist("", input)
	if length <= 0 {
		log.Println("Error: Missing or invalid --length option. Please supply the length of the molecular identifier as it appears in the read names.")
		valid = false
	}
	if !valid {
		fmt.Fprint(os.Stderr, DedupHelp)
		os.Exit(1)
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_deduped.sam"
	}

	phase := int64(1)
	if sortInput {
		if sortedName == "" {
			sortedName = sam.TempSortName()
		}
		err := timedRun(timed, profile, "Sorting input by mapping position.", phase, func() error {
			return sam.SortFile(input, sortedName)
		})
		if err != nil {
			return err
		}
		input = sortedName
		phase++
	}

	var table *dedup.Table
	err := timedRun(timed, profile, "Removing PCR duplicates.", phase, func() (err error) {
		in, err := sam.Open(input)
		if err != nil {
			return err
		}
		defer func() {
			nerr := in.Close()
			if err == nil {
				err = nerr
			}
		}()
		table, err = dedup.Run(in, length)
		return err
	})
	if err != nil {
		return err
	}
	phase++
	return timedRun(timed, profile, "Writing surviving records.", phase, func() (err error) {
		pathname, err := filepath.Abs(output)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(pathname), 0700); err != nil {
			return err
		}
		out, err := sam.Create(pathname)
		if err != nil {
			return err
		}
		defer func() {
			nerr := out.Close()
			if err == nil {
				err = nerr
			}
		}()
		for _, line := range table.Lines() {
			if err := out.WriteLine(line); err != nil {
				return err
			}
		}
		return nil
	})
}
