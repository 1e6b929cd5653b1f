// Package session holds the in-memory library for one run of the program
// and dispatches command lines against it.
package session

import (
	"context"
	"strings"
	"unicode"

	"github.com/agentstation/shelf/internal/commands"
	"github.com/agentstation/shelf/pkg/books"
	"github.com/agentstation/shelf/pkg/logging"
)

// Session owns a library and runs commands against it. It is not safe for
// concurrent use.
type Session struct {
	library *books.Collection
}

// New returns a session with an empty library.
func New() *Session {
	return &Session{library: books.NewCollection()}
}

// Library returns the session's collection.
func (s *Session) Library() *books.Collection { return s.library }

// Len returns the number of books in the library.
func (s *Session) Len() int { return s.library.Len() }

// Run parses and executes one command line. Diagnostics go to the logger
// carried by ctx. A blank line is a no-op and returns an empty result. An
// unknown command or rejected argument returns the error and leaves the
// library unchanged.
func (s *Session) Run(ctx context.Context, line string) (*commands.Result, error) {
	name, argument := SplitLine(line)
	if name == "" {
		return &commands.Result{}, nil
	}

	ctx = logging.WithField(ctx, "command", name)
	logger := logging.FromContext(ctx)

	cmd, err := commands.New(name, argument, commands.WithContext(ctx))
	if err != nil {
		logger.Debug().Err(err).Msg("Command rejected")
		return nil, err
	}

	logger.Debug().Str("argument", argument).Msg("Executing command")
	return cmd.Execute(s.library), nil
}

// Preload runs ADD for each path in order and merges the results. It stops
// at the first path ADD rejects.
func (s *Session) Preload(ctx context.Context, paths ...string) (*commands.Result, error) {
	merged := &commands.Result{}
	for _, path := range paths {
		res, err := s.Run(ctx, commands.TypeAdd.String()+" "+path)
		if err != nil {
			return merged, err
		}
		merged.Lines = append(merged.Lines, res.Lines...)
		merged.Diagnostics = append(merged.Diagnostics, res.Diagnostics...)
	}
	return merged, nil
}

// SplitLine trims a command line and separates the command name from the
// argument text following the first run of whitespace.
func SplitLine(line string) (name, argument string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}
