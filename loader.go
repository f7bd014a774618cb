package locgen

import (
	"compress/bzip2"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
)

// Column headers expected in every input source.
const (
	ColumnRoute    = "Route"
	ColumnBlockID  = "Block ID"
	ColumnLocation = "Location"
)

// DefaultIgnorePatterns skips editor backups, lock files and other dotfiles
// that tend to appear in the input directory.
var DefaultIgnorePatterns = []string{".*"}

// RawRecord is one block number from one input row. A row listing several
// block numbers yields several records sharing Route and Location.
type RawRecord struct {
	Route    string
	Block    uint32
	Location string
	Pos      Position
}

// Loader reads tabular input sources into raw records.
type Loader struct {
	territories *Territories
	ignore      *ignore.GitIgnore
	log         zerolog.Logger
}

// NewLoader creates a loader that validates routes against territories and
// skips directory entries matching the gitignore-style ignorePatterns.
func NewLoader(territories *Territories, ignorePatterns []string, log zerolog.Logger) *Loader {
	return &Loader{
		territories: territories,
		ignore:      ignore.CompileIgnoreLines(ignorePatterns...),
		log:         log,
	}
}

// LoadDir reads every input source in dir. Entries are visited in name order
// so that error reports are reproducible; the order has no other meaning.
func (l *Loader) LoadDir(dir string) ([]RawRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ioError("reading directory", dir, err)
	}

	var records []RawRecord
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if l.ignore.MatchesPath(e.Name()) {
			l.log.Debug().Str("file", e.Name()).Msg("skipping ignored input")
			continue
		}
		path := filepath.Join(dir, e.Name())
		recs, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		l.log.Debug().Str("file", path).Int("records", len(recs)).Msg("loaded input")
		records = append(records, recs...)
	}
	return records, nil
}

// loadFile reads a single source. Extracted to avoid defer-in-loop.
func (l *Loader) loadFile(path string) ([]RawRecord, error) {
	r, cleanup, err := openSource(path)
	if err != nil {
		return nil, ioError("opening", path, err)
	}
	defer cleanup()
	return l.LoadReader(path, r)
}

// openSource opens path, decompressing it when the name ends in .gz or .bz2.
func openSource(path string) (io.Reader, func() error, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		fz, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, nil, err
		}
		return fz, func() error {
			fz.Close()
			return fh.Close()
		}, nil
	case ".bz2":
		return bzip2.NewReader(fh), fh.Close, nil
	}
	return fh, fh.Close, nil
}

// LoadReader parses one CSV source. name is used for error positions only.
func (l *Loader) LoadReader(name string, r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, ioError("reading", name, err)
	}
	cols, err := columnIndexes(header)
	if err != nil {
		return nil, &RecordError{Pos: Position{Source: name, Line: 1}, Err: err}
	}

	var records []RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ioError("reading", name, err)
		}
		line, _ := cr.FieldPos(0)
		pos := Position{Source: name, Line: line}

		recs, err := l.parseRow(row, cols, pos)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

// columns holds the index of each required column in a source's rows.
type columns struct {
	route, blockID, location int
}

func columnIndexes(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	var c columns
	for _, want := range []struct {
		name string
		dst  *int
	}{
		{ColumnRoute, &c.route},
		{ColumnBlockID, &c.blockID},
		{ColumnLocation, &c.location},
	} {
		i, ok := idx[want.name]
		if !ok {
			return columns{}, fmt.Errorf("%w: header has no %q column", ErrMissingColumn, want.name)
		}
		*want.dst = i
	}
	return c, nil
}

func (l *Loader) parseRow(row []string, cols columns, pos Position) ([]RawRecord, error) {
	field := func(i int) (string, bool) {
		if i >= len(row) {
			return "", false
		}
		return row[i], true
	}
	route, okR := field(cols.route)
	blocks, okB := field(cols.blockID)
	location, okL := field(cols.location)
	if !okR || !okB || !okL {
		return nil, &RecordError{Pos: pos, Err: fmt.Errorf("%w: row has %d fields", ErrMissingColumn, len(row))}
	}

	route = strings.TrimSpace(route)
	if _, err := l.territories.resolve(route); err != nil {
		return nil, &RecordError{Pos: pos, Route: route, Err: err}
	}

	ids, err := ParseBlockIDs(blocks)
	if err != nil {
		return nil, &RecordError{Pos: pos, Route: route, Err: err}
	}

	records := make([]RawRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, RawRecord{Route: route, Block: id, Location: location, Pos: pos})
	}
	return records, nil
}

// isBlockSeparator reports whether r separates block numbers in the
// Block ID column. Runs of separators collapse.
func isBlockSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// ParseBlockIDs splits a Block ID cell into block numbers. The cell must
// contain at least one number; every token must be a non-negative integer.
func ParseBlockIDs(s string) ([]uint32, error) {
	tokens := strings.FieldsFunc(s, isBlockSeparator)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no block numbers in %q", ErrMalformedBlockID, s)
	}
	ids := make([]uint32, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
				return nil, fmt.Errorf("%w: %q is too large", ErrMalformedBlockID, tok)
			}
			return nil, fmt.Errorf("%w: %q is not a non-negative integer", ErrMalformedBlockID, tok)
		}
		ids = append(ids, uint32(n))
	}
	return ids, nil
}
