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
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
)

// An InputFile represents a SAM file for input. It acts as a pargo
// pipeline source that produces fixed-size batches of alignment
// lines, with end-of-line characters stripped.
type InputFile struct {
	rc     io.ReadCloser
	reader *bufio.Reader
	cmd    *exec.Cmd
	data   []string
	err    error
}

// An OutputFile represents a SAM file for output.
type OutputFile struct {
	wc     io.WriteCloser
	writer *bufio.Writer
}

/*
Open opens a SAM file for input. BAM input is piped through samtools
view, so samtools must be visible in the PATH for it. /dev/stdin reads
from standard input.
*/
func Open(name string) (*InputFile, error) {
	switch filepath.Ext(name) {
	case ".bam":
		if _, err := os.Stat(name); err != nil {
			return nil, err
		}
		args := []string{"view", "-h", "-@", strconv.FormatInt(int64(runtime.GOMAXPROCS(0)), 10), name}
		cmd := exec.Command("samtools", args...)
		outPipe, err := cmd.StdoutPipe()
		if err != nil {
			return nil, err
		}
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		return &InputFile{rc: outPipe, reader: bufio.NewReader(outPipe), cmd: cmd}, nil
	default:
		if name == "/dev/stdin" {
			return &InputFile{rc: os.Stdin, reader: bufio.NewReader(os.Stdin)}, nil
		}
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		return &InputFile{rc: file, reader: bufio.NewReader(file)}, nil
	}
}

/*
SkipHeader consumes the header section of the input and returns the
number of header lines skipped. The next fetched line is the first
alignment line.
*/
func (f *InputFile) SkipHeader() (lines int, err error) {
	for {
		data, err := f.reader.Peek(1)
		if err != nil {
			if err == io.EOF {
				return lines, nil
			}
			return lines, err
		}
		if data[0] != HeaderMarker {
			return lines, nil
		}
		for {
			b, err := f.reader.ReadByte()
			if err != nil {
				if err == io.EOF {
					return lines, nil
				}
				return lines, err
			}
			if b == '\n' {
				break
			}
		}
		lines++
	}
}

// Err implements the method of the pipeline.Source interface.
func (f *InputFile) Err() error {
	return f.err
}

// Prepare implements the method of the pipeline.Source interface.
func (f *InputFile) Prepare(_ context.Context) int {
	return -1
}

// Fetch implements the method of the pipeline.Source interface.
// Batches must not be reused because later pipeline stages may still
// hold earlier ones.
func (f *InputFile) Fetch(size int) int {
	batch := make([]string, 0, size)
	for len(batch) < size {
		line, err := f.reader.ReadString('\n')
		if err == io.EOF {
			if line != "" {
				batch = append(batch, trimEOL(line))
			}
			break
		}
		if err != nil {
			f.err = err
			break
		}
		batch = append(batch, trimEOL(line))
	}
	f.data = batch
	return len(batch)
}

// Data implements the method of the pipeline.Source interface.
func (f *InputFile) Data() interface{} {
	return f.data
}

// Close closes the SAM input file.
func (f *InputFile) Close() error {
	if f.rc != os.Stdin {
		if err := f.rc.Close(); err != nil {
			return err
		}
	}
	if f.cmd != nil {
		return f.cmd.Wait()
	}
	return nil
}

func trimEOL(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

// Create opens a SAM file for output. /dev/stdout writes to standard
// output.
func Create(name string) (*OutputFile, error) {
	if name == "/dev/stdout" {
		return &OutputFile{wc: os.Stdout, writer: bufio.NewWriter(os.Stdout)}, nil
	}
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &OutputFile{wc: file, writer: bufio.NewWriter(file)}, nil
}

// WriteLine writes one alignment line, restoring the end-of-line
// character stripped on input.
func (f *OutputFile) WriteLine(line string) error {
	if _, err := f.writer.WriteString(line); err != nil {
		return err
	}
	return f.writer.WriteByte('\n')
}

// Close flushes and closes the SAM output file.
func (f *OutputFile) Close() error {
	if err := f.writer.Flush(); err != nil {
		return err
	}
	if f.wc != os.Stdout {
		return f.wc.Close()
	}
	return nil
}
