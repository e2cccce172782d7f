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
	"log"

	"github.com/exascience/pargo/pipeline"

	"github.com/devin-d/samdedup/sam"
)

// batchSize is fixed for the whole pipeline so that record ordinals
// can be computed from the batch serial number.
const batchSize = 16384

/*
classifyLines returns a pargo pipeline.Filter that classifies batches
of alignment lines. Classification is pure, so this stage can run on
any number of goroutines; stray header lines inside the alignment
section are skipped here.
*/
func classifyLines(c *Classifier) pipeline.Filter {
	return func(p *pipeline.Pipeline, _ pipeline.NodeKind, _ *int) (receiver pipeline.Receiver, _ pipeline.Finalizer) {
		receiver = func(serial int, data interface{}) interface{} {
			lines := data.([]string)
			cls := make([]Classification, 0, len(lines))
			offset := serial * batchSize
			for index, line := range lines {
				if len(line) == 0 || line[0] == sam.HeaderMarker {
					continue
				}
				cls = append(cls, c.Classify(line, offset+index+1))
			}
			return cls
		}
		return
	}
}

/*
Run streams a SAM input through classification into a deduplication
Table and returns the table once the input is exhausted. The header
section is skipped; every dropped record is logged with its line
position and read name.

Records are classified in parallel, but the table is mutated by a
single strictly-ordered stage, so the first-seen-wins tie rule
behaves exactly as under sequential processing.
*/
func Run(input *sam.InputFile, idLength int) (*Table, error) {
	if _, err := input.SkipHeader(); err != nil {
		return nil, err
	}
	classifier := &Classifier{IDLength: idLength}
	table := NewTable()
	var examined, malformed, nonUnique, noID int
	var p pipeline.Pipeline
	p.Source(input)
	p.SetVariableBatchSize(batchSize, batchSize)
	p.Add(
		pipeline.LimitedPar(0, classifyLines(classifier)),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			cls := data.([]Classification)
			for i := range cls {
				cl := &cls[i]
				examined++
				switch {
				case cl.Err != nil:
					malformed++
					log.Printf("Skipping malformed record at line %v: %v.", cl.Ordinal, cl.Err)
				case !cl.Unique:
					nonUnique++
					log.Printf("Read at line %v is unmapped or not uniquely mapped, will not be included in output: %v.", cl.Ordinal, cl.Record.QNAME)
				case !cl.HasID:
					noID++
					log.Printf("Could not find a molecular identifier at line %v, will not be included in output: %v.", cl.Ordinal, cl.Record.QNAME)
				default:
					table.Add(cl)
				}
			}
			return data
		})),
	)
	p.Run()
	if err := p.Err(); err != nil {
		return nil, err
	}
	duplicates := examined - malformed - nonUnique - noID - table.Len()
	log.Printf("Examined %v records: kept %v, removed %v duplicates, %v unmapped or not uniquely mapped, %v without molecular identifier, %v malformed.",
		examined, table.Len(), duplicates, nonUnique, noID, malformed)
	return table, nil
}
