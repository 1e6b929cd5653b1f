// Package loader reads library data files and turns their rows into books.
//
// Loading is two-phase: LoadFileContent reads and stores the raw lines,
// ParseFileContent converts them. A bad row is skipped and reported; it
// never aborts the rest of the file.
package loader

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/shelf/pkg/books"
	"github.com/agentstation/shelf/pkg/constants"
	"github.com/agentstation/shelf/pkg/errors"
	"github.com/agentstation/shelf/pkg/logging"
)

const (
	fieldSeparator  = ","
	authorSeparator = "-"
)

// Column names the position of a field within a data file row.
type Column int

// Columns in file order. Do not reorder: the value is the field index.
const (
	ColumnTitle Column = iota
	ColumnAuthors
	ColumnRating
	ColumnISBN
	ColumnPages

	columnCount
)

// String returns the column name.
func (c Column) String() string {
	switch c {
	case ColumnTitle:
		return "title"
	case ColumnAuthors:
		return "authors"
	case ColumnRating:
		return "rating"
	case ColumnISBN:
		return "isbn"
	case ColumnPages:
		return "pages"
	default:
		return "column(" + strconv.Itoa(int(c)) + ")"
	}
}

// OpenFunc opens a data file for reading.
type OpenFunc func(path string) (io.ReadCloser, error)

// FileLoader loads one data file at a time. It is not safe for concurrent use.
type FileLoader struct {
	open    OpenFunc
	logger  *zerolog.Logger
	path    string
	content []string
	loaded  bool
}

// Option configures a FileLoader.
type Option func(*FileLoader)

// WithLogger sets the logger used for row diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(l *FileLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithOpener replaces os.Open, e.g. to read from an embedded filesystem.
func WithOpener(open OpenFunc) Option {
	return func(l *FileLoader) {
		if open != nil {
			l.open = open
		}
	}
}

// New creates a loader with no content loaded.
func New(opts ...Option) *FileLoader {
	l := &FileLoader{
		open:   func(path string) (io.ReadCloser, error) { return os.Open(path) },
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ParseResult holds the books parsed from the loaded content and the rows
// that were rejected.
type ParseResult struct {
	Books    []*books.Book
	Rejected []*errors.ParseError
}

// LoadFileContent reads every line of path and stores it for
// ParseFileContent. On failure it returns an *errors.IOError and the
// previously loaded content is kept.
func (l *FileLoader) LoadFileContent(path string) error {
	lines, err := l.readLines(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("Reading file content failed")
		return err
	}

	l.path = path
	l.content = lines
	l.loaded = true
	l.logger.Debug().Str("file", path).Int("lines", len(lines)).Msg("Loaded file content")
	return nil
}

func (l *FileLoader) readLines(path string) (lines []string, err error) {
	f, err := l.open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			lines, err = nil, errors.WrapIO("close", path, cerr)
		}
	}()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return lines, nil
}

// ContentLoaded reports whether a previous LoadFileContent succeeded.
func (l *FileLoader) ContentLoaded() bool {
	return l.loaded
}

// ParseFileContent parses the loaded lines into books. The first line is a
// header and is ignored. If nothing has been loaded it returns an empty
// result and errors.ErrNoContent.
func (l *FileLoader) ParseFileContent() (*ParseResult, error) {
	result := &ParseResult{}

	if !l.loaded {
		l.logger.Error().Msg("No content loaded before parsing")
		return result, errors.ErrNoContent
	}

	for i, line := range l.content {
		if i == 0 {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		book, perr := l.parseLine(line)
		if perr != nil {
			perr.File = l.path
			perr.Line = i + 1
			result.Rejected = append(result.Rejected, perr)
			l.logger.Warn().
				Str("file", l.path).
				Int("line", perr.Line).
				Str("column", perr.Column).
				Msg("Skipping invalid row: " + perr.Message)
			continue
		}
		result.Books = append(result.Books, book)
	}

	l.logger.Debug().
		Str("file", l.path).
		Int("books", len(result.Books)).
		Int("rejected", len(result.Rejected)).
		Msg("Parsed file content")

	return result, nil
}

func (l *FileLoader) parseLine(line string) (*books.Book, *errors.ParseError) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) < int(columnCount) {
		return nil, rowError("", "expected "+strconv.Itoa(int(columnCount))+" fields, got "+strconv.Itoa(len(fields)), nil)
	}

	field := func(c Column) string { return fields[c] }

	rating, err := strconv.ParseFloat(strings.TrimSpace(field(ColumnRating)), 64)
	if err != nil {
		return nil, rowError(ColumnRating.String(), "not a number: "+strconv.Quote(field(ColumnRating)), err)
	}

	pages, err := strconv.Atoi(strings.TrimSpace(field(ColumnPages)))
	if err != nil {
		return nil, rowError(ColumnPages.String(), "not an integer: "+strconv.Quote(field(ColumnPages)), err)
	}

	authors := strings.Split(field(ColumnAuthors), authorSeparator)

	book, err := books.New(field(ColumnTitle), authors, rating, field(ColumnISBN), pages)
	if err != nil {
		column := ""
		var verr *errors.ValidationError
		if errors.As(err, &verr) {
			column = verr.Field
		}
		return nil, rowError(column, err.Error(), err)
	}
	return book, nil
}

func rowError(column, message string, err error) *errors.ParseError {
	perr := errors.NewParseError(constants.DataFileFormat, "", message, err)
	perr.Column = column
	return perr
}
