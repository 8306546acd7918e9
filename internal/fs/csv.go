package fs

import (
	"encoding/csv"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	// ErrDelimiter is returned for a delimiter that is not a single usable character.
	ErrDelimiter = errors.New("delimiter must be a single character")
	// ErrBinaryFile is returned by ReadCSV for content that does not look like text.
	ErrBinaryFile = errors.New("not a text file")
)

// ReadOptions controls how a delimited file is parsed.
type ReadOptions struct {
	Delimiter rune
	HasHeader bool
}

// Records is a parsed delimited file. Headers is nil when the file has no
// header row. Rows may be ragged.
type Records struct {
	Headers []string
	Rows    [][]string
}

// Columns is the width of the widest of the header and all rows.
func (r *Records) Columns() int {
	cols := len(r.Headers)
	for _, row := range r.Rows {
		cols = max(cols, len(row))
	}
	return cols
}

// ParseDelimiter accepts one character, or the escape `\t` for tab.
func ParseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.Wrapf(ErrDelimiter, "got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, errors.Wrapf(ErrDelimiter, "%q cannot delimit fields", s)
	}
	return r, nil
}

// ReadCSV parses the file at path after checking that it holds text.
func ReadCSV(path string, opts ReadOptions) (records *Records, err error) {
	sample, err := ReadTextSample(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open %s", path)
		return
	}
	if !IsTextFile(path, sample) {
		err = errors.Wrapf(ErrBinaryFile, "%s", path)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open %s", path)
		return
	}
	defer func() {
		_ = f.Close()
	}()

	records, err = ParseCSV(f, opts)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s", path)
	}
	return
}

// ParseCSV parses delimited text from r.
func ParseCSV(r io.Reader, opts ReadOptions) (*Records, error) {
	reader := csv.NewReader(NewTextReader(r))
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	records := &Records{}
	first := true
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse record")
		}
		if first && opts.HasHeader {
			records.Headers = rec
			first = false
			continue
		}
		first = false
		records.Rows = append(records.Rows, rec)
	}
	return records, nil
}
