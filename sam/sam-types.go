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

// HeaderMarker starts every header line in the SAM text format.
const HeaderMarker = '@'

// Flag bits of the FLAG field. See
// http://samtools.github.io/hts-specs/SAMv1.pdf - Section 1.4.
const (
	Multiple      = 0x1
	Proper        = 0x2
	Unmapped      = 0x4
	NextUnmapped  = 0x8
	Reversed      = 0x10
	NextReversed  = 0x20
	First         = 0x40
	Last          = 0x80
	Secondary     = 0x100
	QCFailed      = 0x200
	Duplicate     = 0x400
	Supplementary = 0x800
)

/*
A Record is a view over one alignment line of a SAM file. Only the
fields the deduplication logic consumes are parsed out; Line retains
the original text so that surviving records can be written back out
verbatim.
*/
type Record struct {
	QNAME string
	FLAG  uint16
	POS   int32
	CIGAR string
	QUAL  string
	Line  string
}

func (rec *Record) IsUnmapped() bool  { return (rec.FLAG & Unmapped) != 0 }
func (rec *Record) IsReversed() bool  { return (rec.FLAG & Reversed) != 0 }
func (rec *Record) IsSecondary() bool { return (rec.FLAG & Secondary) != 0 }

/*
ParseRecord parses the fields of one alignment line. The line must
have at least 11 tab-separated fields, with an integer FLAG and POS;
fields beyond QUAL are ignored. A non-nil error marks a malformed
record, which callers skip rather than abort on.
*/
func ParseRecord(line string) (*Record, error) {
	var sc StringScanner
	sc.Reset(line)
	rec := &Record{Line: line}
	rec.QNAME = sc.doString()
	rec.FLAG = uint16(sc.doUint(16))
	sc.doString() // RNAME
	rec.POS = sc.doInt32()
	sc.doString() // MAPQ
	rec.CIGAR = sc.doString()
	sc.doString() // RNEXT
	sc.doString() // PNEXT
	sc.doString() // TLEN
	sc.doString() // SEQ
	rec.QUAL, _ = sc.readUntil('\t')
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}
