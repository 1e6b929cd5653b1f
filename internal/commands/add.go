package commands

import (
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/agentstation/shelf/internal/loader"
	"github.com/agentstation/shelf/pkg/constants"
	"github.com/agentstation/shelf/pkg/logging"
)

// AddCommand loads a data file and appends its books to the library.
type AddCommand struct {
	opts   *options
	path   string
	parsed bool
}

// Type implements Command.
func (c *AddCommand) Type() Type { return TypeAdd }

// Path returns the parsed data file path.
func (c *AddCommand) Path() string { return c.path }

// Parse accepts a single path ending in the data file suffix.
func (c *AddCommand) Parse(argument string) error {
	path := strings.TrimSpace(argument)
	switch {
	case path == "":
		return reject(TypeAdd, argument, "a data file path is required")
	case strings.ContainsRune(path, 0):
		return reject(TypeAdd, argument, "invalid path")
	case !strings.HasSuffix(path, constants.DataFileSuffix):
		return reject(TypeAdd, argument, "data file must end in "+constants.DataFileSuffix)
	case filepath.Base(path) == constants.DataFileSuffix:
		return reject(TypeAdd, argument, "data file name is missing")
	}

	c.path = path
	c.parsed = true
	return nil
}

// Execute reads the data file and appends every valid book to lib. A file
// that cannot be read leaves lib untouched.
func (c *AddCommand) Execute(lib Library) *Result {
	mustExecutable(TypeAdd, c.parsed, lib)

	res := &Result{}
	ctx := logging.WithFile(logging.WithOperation(c.opts.ctx, "add"), c.path)
	logger := logging.FromContext(ctx)
	l := loader.New(loader.WithLogger(logger))

	if err := l.LoadFileContent(c.path); err != nil {
		res.Errorf("ERROR: Reading file content failed: %v", err)
		return res
	}

	parsed, err := l.ParseFileContent()
	if err != nil {
		res.Errorf("ERROR: %v", err)
		return res
	}

	lib.Append(parsed.Books...)
	res.Printf("Loaded %s %s from %s.", humanize.Comma(int64(len(parsed.Books))), plural(len(parsed.Books), "book", "books"), c.path)
	if n := len(parsed.Rejected); n > 0 {
		res.Errorf("Skipped %s invalid %s in %s.", humanize.Comma(int64(n)), plural(n, "row", "rows"), c.path)
	}

	logger.Info().
		Int("added", len(parsed.Books)).
		Int("skipped", len(parsed.Rejected)).
		Int("total", lib.Len()).
		Msg("Added books")
	return res
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
