// Package fai reads the contig lengths of a samtools fasta index.
package fai

import (
	"fmt"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"strconv"
	"strings"
)

// Index holds the records of a .fai file.
type Index struct {
	records []record
	byName  map[string]int // position in records
}

// record is one line of a .fai file.
type record struct {
	name      string
	length    int
	offset    int // byte offset of the first base
	lineBases int
	lineBytes int // including the newline
}

func (r record) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%d", r.name, r.length, r.offset, r.lineBases, r.lineBytes)
}

// String renders idx in .fai format.
func (idx Index) String() string {
	s := new(strings.Builder)
	for _, r := range idx.records {
		s.WriteString(r.String())
		s.WriteByte('\n')
	}
	return s.String()
}

// Size returns the length of chr, and false if chr is not in the index.
func (idx Index) Size(chr string) (int, bool) {
	i, found := idx.byName[chr]
	if !found {
		return 0, false
	}
	return idx.records[i].length, true
}

// Names returns the contig names in index order.
func (idx Index) Names() []string {
	ans := make([]string, 0, len(idx.records))
	for _, r := range idx.records {
		ans = append(ans, r.name)
	}
	return ans
}

// ReadIndex reads a .fai file. Contig names must be unique.
func ReadIndex(filename string) (Index, error) {
	file := fileio.EasyOpen(filename)
	defer cleanup(file)
	ans := Index{byName: make(map[string]int)}
	var lineNum int
	for line, done := fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		r, err := parseRecord(line)
		if err != nil {
			return ans, fmt.Errorf("%s line %d: %w", filename, lineNum, err)
		}
		if _, dup := ans.byName[r.name]; dup {
			return ans, fmt.Errorf("%s: contig %s is indexed more than once", filename, r.name)
		}
		ans.byName[r.name] = len(ans.records)
		ans.records = append(ans.records, r)
	}
	return ans, nil
}

func parseRecord(line string) (record, error) {
	var r record
	var err error
	fields := strings.Split(line, "\t")
	if len(fields) != 5 {
		return r, fmt.Errorf("expected 5 columns, found %d", len(fields))
	}
	r.name = fields[0]
	for i, dest := range []*int{&r.length, &r.offset, &r.lineBases, &r.lineBytes} {
		*dest, err = strconv.Atoi(fields[i+1])
		if err != nil {
			return r, fmt.Errorf("column %d of %s is not an integer: %s", i+2, r.name, fields[i+1])
		}
	}
	return r, nil
}

func cleanup(file *fileio.EasyReader) {
	err := file.Close()
	exception.PanicOnErr(err)
}
