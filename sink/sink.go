// Package sink writes processed reads, either as BAM, as SAM text, or as
// pre-formatted text lines.
package sink

import (
	"errors"
	"fmt"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
	"io"
	"strings"
	"syscall"
)

// Sink is the destination for processed reads.
type Sink struct {
	file *fileio.EasyWriter
	w    *latchWriter
	bam  *sam.BamWriter
}

// latchWriter keeps the first write error and discards everything after it, so
// encoders layered on top never see an error and the caller can check Err
// between records.
type latchWriter struct {
	w   io.Writer
	err error
}

func (l *latchWriter) Write(p []byte) (int, error) {
	if l.err != nil {
		return len(p), nil
	}
	if _, err := l.w.Write(p); err != nil {
		l.err = err
	}
	return len(p), nil
}

// IsStdout reports whether output names standard output rather than a file.
func IsStdout(output string) bool {
	return output == "" || output == "stdout" || output == "-"
}

// IsText reports whether reads written to output are SAM text rather than BAM.
func IsText(output string) bool {
	return IsStdout(output) || strings.HasSuffix(output, ".sam") || strings.HasSuffix(output, ".sam.gz")
}

// New creates a Sink writing to output. Text lines (tabular is true) are written
// to output as is. Otherwise reads go to output as SAM text with header when
// output is standard output or ends in .sam, and as BAM for any other file.
func New(output string, header sam.Header, tabular bool) *Sink {
	text := IsText(output)
	if IsStdout(output) {
		output = "stdout"
	}
	s := new(Sink)
	s.file = fileio.EasyCreate(output)
	s.w = &latchWriter{w: s.file}
	s.begin(header, tabular, text)
	return s
}

// NewWriter creates a Sink writing text to w: tab separated lines when tabular
// is set, SAM with header otherwise. Close does not close w.
func NewWriter(w io.Writer, header sam.Header, tabular bool) *Sink {
	s := &Sink{w: &latchWriter{w: w}}
	s.begin(header, tabular, true)
	return s
}

func (s *Sink) begin(header sam.Header, tabular, text bool) {
	switch {
	case tabular:
	case text:
		sam.WriteHeaderToFileHandle(s.w, header)
	default:
		s.bam = sam.NewBamWriter(s.w, header)
	}
}

// WriteRecord writes one read.
func (s *Sink) WriteRecord(r sam.Sam) error {
	if s.bam != nil {
		sam.WriteToBamFileHandle(s.bam, r, 0)
		return s.w.err
	}
	sam.WriteToFileHandle(s.w, r)
	return s.w.err
}

// WriteLine writes one line of text.
func (s *Sink) WriteLine(line string) error {
	_, _ = fmt.Fprintln(s.w, line)
	return s.w.err
}

// Err returns the first error encountered while writing.
func (s *Sink) Err() error {
	return s.w.err
}

// Close flushes and closes the output. The first write error, if any, is returned.
func (s *Sink) Close() error {
	var err error
	if s.bam != nil {
		err = s.bam.Close()
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	}
	if s.w.err != nil {
		return s.w.err
	}
	return err
}

// IsBrokenPipe reports whether err is caused by the reader of the output going away,
// e.g. when piping into head.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
