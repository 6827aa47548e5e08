// =============================================================================
// Inventory Validator - Loader
// =============================================================================
//
// This module turns an inventory export into a lazy, single-pass sequence of
// text lines. It handles:
//   - Tab-delimited text exports in a permissive single-byte encoding
//   - Excel workbooks (.xlsx), whose rows are joined back into lines
//
// ENCODING:
//   Exports come out of the point-of-sale system in latin-1, and some of them
//   are damaged or mix encodings. Every byte value decodes under latin-1 and
//   windows-1252, so loading never aborts on bad bytes. utf-8 passes bytes
//   through unchanged.
//
// USAGE:
//   scanner, err := loader.Open(path, cfg.Input)
//   if err != nil {
//       return err
//   }
//   defer scanner.Close()
//
//   for scanner.Next() {
//       line := scanner.Line()
//       // Process the line...
//   }
//
//   if err := scanner.Err(); err != nil {
//       return err
//   }
//
// =============================================================================

package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/inventory-validator/internal/config"
)

// =============================================================================
// ERRORS
// =============================================================================

// ResourceError reports an input file that is missing or unreadable. It is
// fatal for the run.
type ResourceError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	return fmt.Sprintf("cannot read input file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// =============================================================================
// SCANNER
// =============================================================================

// lineSource produces raw lines one at a time. next returns io.EOF when the
// input is exhausted.
type lineSource interface {
	next() (string, error)
	close() error
}

// Scanner is a single-pass reader over the lines of one input file. It is not
// restartable; reopen the file to read it again.
type Scanner struct {
	path       string
	src        lineSource
	line       string
	lineNumber int
	done       bool
	err        error
}

// Open opens the input file and prepares a Scanner over its lines.
//
// PARAMETERS:
//   - path: The path to the export (.xlsx for workbooks, anything else is text).
//   - settings: The input settings; Encoding, Sheet and Delimiter are used here.
//
// RETURNS:
//   - A pointer to the Scanner. The caller must Close it.
//   - A *ResourceError if the file cannot be opened, or a plain error for an
//     unsupported encoding.
func Open(path string, settings config.InputSettings) (*Scanner, error) {
	var (
		src lineSource
		err error
	)

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		src, err = openWorkbook(path, settings.Sheet, settings.Delimiter)
	} else {
		src, err = openText(path, settings.Encoding)
	}
	if err != nil {
		return nil, err
	}

	return &Scanner{path: path, src: src}, nil
}

// Next advances to the next line. Returns false when there are no more lines
// or a read error occurred.
func (s *Scanner) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	line, err := s.src.next()
	if err == io.EOF {
		s.done = true
		return false
	}
	if err != nil {
		s.err = &ResourceError{Path: s.path, Err: fmt.Errorf("line %d: %w", s.lineNumber+1, err)}
		return false
	}

	s.lineNumber++
	s.line = line
	return true
}

// Line returns the current line without its line terminator.
func (s *Scanner) Line() string {
	return s.line
}

// LineNumber returns the current line number (1-indexed).
func (s *Scanner) LineNumber() int {
	return s.lineNumber
}

// Err returns any error that occurred while reading.
func (s *Scanner) Err() error {
	return s.err
}

// Close releases the underlying file.
func (s *Scanner) Close() error {
	return s.src.close()
}

// =============================================================================
// TEXT EXPORTS
// =============================================================================

type textSource struct {
	file   *os.File
	reader *bufio.Reader
}

func openText(path, encodingName string) (*textSource, error) {
	decoder, err := decoderFor(encodingName)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}

	var reader io.Reader = file
	if decoder != nil {
		reader = transform.NewReader(file, decoder.NewDecoder())
	}

	return &textSource{file: file, reader: bufio.NewReader(reader)}, nil
}

// decoderFor returns the single-byte decoder for an encoding name, or nil for
// utf-8.
func decoderFor(name string) (encoding.Encoding, error) {
	normalized, err := config.NormalizeEncoding(name)
	if err != nil {
		return nil, err
	}

	switch normalized {
	case config.EncodingWindows1252:
		return charmap.Windows1252, nil
	case config.EncodingUTF8:
		return nil, nil
	default:
		return charmap.ISO8859_1, nil
	}
}

// next returns the next line without its terminator. "\n", "\r\n" and a
// lone "\r" all end a line.
func (t *textSource) next() (string, error) {
	var line []byte
	for {
		b, err := t.reader.ReadByte()
		if errors.Is(err, io.EOF) {
			if len(line) == 0 {
				return "", io.EOF
			}
			return string(line), nil
		}
		if err != nil {
			return "", err
		}

		switch b {
		case '\n':
			return string(line), nil
		case '\r':
			if peek, err := t.reader.Peek(1); err == nil && peek[0] == '\n' {
				t.reader.Discard(1)
			}
			return string(line), nil
		}
		line = append(line, b)
	}
}

func (t *textSource) close() error {
	return t.file.Close()
}
