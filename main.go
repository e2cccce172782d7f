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

// samdedup removes PCR duplicate reads from coordinate-sorted SAM
// files. Reads are duplicates when they start at the same leftmost
// mapping position adjusted for soft clipping, carry the same
// molecular identifier in their read name, and map to the same
// strand. The copy with the highest quality score survives.
//
// Please see https://github.com/devin-d/samdedup for a documentation
// of the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/devin-d/samdedup/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: dedup, sort")
	fmt.Fprint(os.Stderr, "\n", cmd.DedupHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.SortHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "dedup":
		err = cmd.Dedup()
	case "sort":
		err = cmd.Sort()
	case "-h", "--h", "-help", "--help", "help":
		printHelp()
	default:
		log.Println("Invalid command:", os.Args[1])
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
