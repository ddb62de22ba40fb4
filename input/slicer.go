// Package input implements the Slicer: the iterator that concatenates
// stdin or an ordered file list into bounded, page-aligned chunks for the
// pipeline to fan out to every mission's scanner.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrStdinRead wraps any read error from standard input. Unlike a file
// source, stdin has no "next source" to fall back to, so this error is
// always fatal for the whole scan.
var ErrStdinRead = errors.New("input: reading from stdin failed")

// FileErrorFunc is called once for every file a Slicer cannot open or read
// past. The file is then treated as empty — the scan continues with
// whatever sources remain.
type FileErrorFunc func(path string, err error)

// Slicer iterates stdin (when no paths are given, or the single path "-")
// or an ordered list of files, yielding fixed-size buffers tagged with the
// 1-based source_id of the file they came from (nil for stdin), and a
// bool marking only the very last buffer of the very last source.
//
// A Slicer is single-use and not safe for concurrent calls to Next.
type Slicer struct {
	stdin       bool
	stdinDone   bool
	paths       []string
	idx         int
	sourceID    uint8
	f           *os.File
	bufSize     int
	onFileError FileErrorFunc
}

// NewSlicer builds a Slicer over paths (or stdin, if paths is empty or is
// the single element "-"). bufFloor is the minimum chunk size in bytes;
// the actual chunk size is rounded up to the next OS page multiple
// (typically 4 KiB). onFileError may be nil; it is never called for stdin, whose errors are
// always returned from Next instead.
func NewSlicer(paths []string, bufFloor int, onFileError FileErrorFunc) *Slicer {
	s := &Slicer{
		bufSize:     roundUpToPageMultiple(bufFloor, osPageSize()),
		onFileError: onFileError,
	}
	if len(paths) == 0 || (len(paths) == 1 && paths[0] == "-") {
		s.stdin = true
		return s
	}
	s.paths = paths
	return s
}

// BufSize reports the chunk size Next reads into. No caller in this module
// uses it; scan.Scan sizes each FindingCollection's scratch from the chunk
// it actually receives.
func (s *Slicer) BufSize() int { return s.bufSize }

// Next returns the next chunk, its source_id (nil for stdin or once all
// sources are exhausted), and whether this is the final chunk of the
// entire stream. Once isLast is true, Next must not be called again.
//
// The read that reaches the end of the last source sets isLast on the data
// chunk it returns. When the sources run out without such a read (empty
// input, or a last file that ends on a zero-byte read), Next returns a
// zero-length chunk with isLast true rather than an error. Either way the
// pipeline gets exactly one is-last-of-all-inputs round reaching every
// ScannerState, even over an empty input.
func (s *Slicer) Next() (chunk []byte, sourceID *uint8, isLast bool, err error) {
	if s.stdin {
		return s.nextStdin()
	}
	return s.nextFile()
}

func (s *Slicer) nextStdin() ([]byte, *uint8, bool, error) {
	if s.stdinDone {
		return nil, nil, true, nil
	}
	buf := make([]byte, s.bufSize)
	for {
		n, err := os.Stdin.Read(buf)
		switch {
		case n > 0 && err == nil:
			return buf[:n], nil, false, nil
		case n > 0 && errors.Is(err, io.EOF):
			s.stdinDone = true
			return buf[:n], nil, true, nil
		case n > 0:
			return nil, nil, false, fmt.Errorf("%w: %v", ErrStdinRead, err)
		case errors.Is(err, io.EOF):
			s.stdinDone = true
			return nil, nil, true, nil
		case err == nil:
			continue // zero-byte, non-EOF read; try again
		default:
			return nil, nil, false, fmt.Errorf("%w: %v", ErrStdinRead, err)
		}
	}
}

func (s *Slicer) nextFile() ([]byte, *uint8, bool, error) {
	for {
		if s.f == nil {
			if s.idx >= len(s.paths) {
				return nil, nil, true, nil
			}
			path := s.paths[s.idx]
			s.idx++
			s.sourceID++
			f, err := os.Open(path)
			if err != nil {
				s.reportFileError(path, err)
				continue
			}
			s.f = f
		}

		buf := make([]byte, s.bufSize)
		n, err := s.f.Read(buf)
		id := s.sourceID

		switch {
		case n > 0 && err == nil:
			return buf[:n], &id, false, nil
		case n > 0 && errors.Is(err, io.EOF):
			s.closeCurrent()
			return buf[:n], &id, s.sourcesExhausted(), nil
		case n > 0:
			s.reportFileError(s.paths[s.idx-1], err)
			s.closeCurrent()
			return buf[:n], &id, s.sourcesExhausted(), nil
		case errors.Is(err, io.EOF):
			s.closeCurrent()
			continue
		case err == nil:
			continue // zero-byte, non-EOF read; try again
		default:
			s.reportFileError(s.paths[s.idx-1], err)
			s.closeCurrent()
			continue
		}
	}
}

func (s *Slicer) closeCurrent() {
	if s.f != nil {
		s.f.Close()
		s.f = nil
	}
}

func (s *Slicer) sourcesExhausted() bool {
	return s.f == nil && s.idx >= len(s.paths)
}

func (s *Slicer) reportFileError(path string, err error) {
	if s.onFileError != nil {
		s.onFileError(path, err)
	}
}

// roundUpToPageMultiple rounds floor up to the next multiple of page (or
// page itself, if floor is non-positive).
func roundUpToPageMultiple(floor, page int) int {
	if page <= 0 {
		page = 4096
	}
	if floor <= 0 {
		return page
	}
	n := (floor + page - 1) / page
	return n * page
}
