package vcard

import (
	"bufio"
	"io"
	"strings"
)

// Block delimiters. Matching is case-insensitive and ignores surrounding
// whitespace; output always uses these canonical forms.
const (
	BeginMarker = "BEGIN:VCARD"
	EndMarker   = "END:VCARD"
)

// maxLineBytes bounds a single physical line. Unfolded base64 photo
// payloads can run to hundreds of kilobytes on one line.
const maxLineBytes = 1 << 20

// Splitter reads a character stream and yields complete records, one per
// matched begin/end marker pair, in the bufio.Scanner style:
//
//	s := vcard.NewSplitter(file)
//	for s.Next() {
//	    rec := s.Record()
//	    ...
//	}
//	if err := s.Err(); err != nil {
//	    ...
//	}
//
// A Splitter is single-pass and not restartable; create a new one to
// re-read the input. Malformed spans are recovered locally and never
// abort the scan (see the package documentation).
type Splitter struct {
	scanner   *bufio.Scanner
	record    *Record // last emitted record
	current   *Record // block being accumulated
	inBlock   bool
	discarded int
	err       error
	done      bool
}

// NewSplitter returns a Splitter reading from r.
func NewSplitter(r io.Reader) *Splitter {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Splitter{scanner: sc}
}

// Next advances to the next complete record. It returns false at end of
// input or on a read error; Err distinguishes the two.
func (s *Splitter) Next() bool {
	if s.done {
		return false
	}
	for s.scanner.Scan() {
		line := s.scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.EqualFold(trimmed, BeginMarker):
			if s.inBlock {
				// Reopened block: the span accumulated so far has no
				// terminator, so it cannot be trusted. Drop it and start
				// over from this marker.
				s.discarded += len(s.current.Lines()) + 1
			}
			s.inBlock = true
			s.current = &Record{}
		case strings.EqualFold(trimmed, EndMarker):
			if !s.inBlock {
				// Stray terminator with no open block.
				s.discarded++
				continue
			}
			s.inBlock = false
			s.record = s.current
			s.current = nil
			return true
		case !s.inBlock:
			s.discarded++
		case trimmed == "":
			// Blank lines are never valid content lines; inside a block
			// they usually mark the end of a bare base64 payload run.
			s.discarded++
		case IsContinuation(line):
			n := len(s.current.Fields)
			if n == 0 {
				// Continuation with nothing to continue.
				s.discarded++
				continue
			}
			s.current.Fields[n-1].AddContinuation(line)
		default:
			s.current.Append(ParseField(line))
		}
	}
	s.done = true
	s.err = s.scanner.Err()
	if s.inBlock {
		// Block still open at end of input.
		s.discarded += len(s.current.Lines()) + 1
		s.inBlock = false
		s.current = nil
	}
	return false
}

// Record returns the record produced by the last successful Next call.
func (s *Splitter) Record() *Record {
	return s.record
}

// Err returns the first read error encountered, if any. Malformed input
// is not an error.
func (s *Splitter) Err() error {
	return s.err
}

// DiscardedLines returns how many physical lines local recovery has
// discarded so far: content outside blocks, stray terminators, blank
// lines, orphaned continuations, and abandoned spans.
func (s *Splitter) DiscardedLines() int {
	return s.discarded
}
