package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/agentstation/shelf/internal/session"
	"github.com/agentstation/shelf/pkg/constants"
	"github.com/agentstation/shelf/pkg/errors"
	"github.com/agentstation/shelf/pkg/logging"
)

// usage holds the synopsis of each library command, in HELP order.
var usage = []struct {
	name, synopsis, summary string
}{
	{"ADD", "ADD <file.csv>", "load books from a data file"},
	{"LIST", "LIST [short|long]", "list all books"},
	{"GROUP", "GROUP TITLE|AUTHOR", "group titles by first letter or author"},
	{"REMOVE", "REMOVE TITLE|AUTHOR <value>", "remove by exact title or by author"},
	{"SEARCH", "SEARCH <term>", "find titles containing a word"},
}

func helpText() string {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, u := range usage {
		fmt.Fprintf(&sb, "  %-30s %s\n", u.synopsis, u.summary)
	}
	fmt.Fprintf(&sb, "  %-30s %s\n", "HELP", "show this help")
	fmt.Fprintf(&sb, "  %-30s %s", "EXIT, QUIT", "leave the prompt")
	return sb.String()
}

func synopsis(name string) string {
	for _, u := range usage {
		if u.name == name {
			return u.synopsis
		}
	}
	return ""
}

// LineReader reads one line of interactive input at a time.
// *readline.Instance implements it.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// LineReaderFactory creates the line reader for the interactive prompt.
type LineReaderFactory func(config *Config, in io.ReadCloser, out, errOut io.Writer) (LineReader, error)

var _ LineReader = (*readline.Instance)(nil)

var completer = readline.NewPrefixCompleter(
	readline.PcItem("ADD"),
	readline.PcItem("LIST", readline.PcItem("short"), readline.PcItem("long")),
	readline.PcItem("GROUP", readline.PcItem("TITLE"), readline.PcItem("AUTHOR")),
	readline.PcItem("REMOVE", readline.PcItem("TITLE"), readline.PcItem("AUTHOR")),
	readline.PcItem("SEARCH"),
	readline.PcItem("HELP"),
	readline.PcItem("EXIT"),
	readline.PcItem("QUIT"),
)

func newReadline(config *Config, in io.ReadCloser, out, errOut io.Writer) (LineReader, error) {
	if config.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.HistoryFile), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", filepath.Dir(config.HistoryFile), err)
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            config.Prompt,
		HistoryFile:       config.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		AutoComplete:      completer,
		Stdin:             in,
		Stdout:            out,
		Stderr:            errOut,
	})
	if err != nil {
		return nil, errors.WrapResource("create", "line reader", "", err)
	}
	return rl, nil
}

// runInteractive loads the data files and reads commands until EXIT, EOF,
// an interrupt on an empty line or context cancellation.
func (a *App) runInteractive(ctx context.Context, files []string) error {
	logger := logging.FromContext(ctx)

	s, err := a.preload(ctx, files, a.out)
	if err != nil {
		return err
	}

	rl, err := a.newLineReader(a.config, a.in, a.out, a.errOut)
	if err != nil {
		return err
	}
	defer func() {
		if err := rl.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close line reader")
		}
	}()

	fmt.Fprintln(a.out, "Type HELP for commands, EXIT to quit.")
	for ctx.Err() == nil {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if strings.TrimSpace(line) == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return errors.WrapIO("read", "stdin", err)
		}

		if done := a.handleLine(ctx, s, line); done {
			return nil
		}
	}

	logger.Debug().Msg("Interactive session cancelled")
	return nil
}

// handleLine runs one interactive line and reports whether the loop should end.
func (a *App) handleLine(ctx context.Context, s *session.Session, line string) bool {
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "EXIT", "QUIT":
		return true
	case "HELP":
		fmt.Fprintln(a.out, helpText())
		return false
	}

	res, err := s.Run(ctx, line)
	name, _ := session.SplitLine(line)
	switch {
	case errors.IsNotFound(err):
		fmt.Fprintf(a.errOut, "ERROR: unknown command %q (type HELP for the command list)\n", name)
		return false
	case errors.IsValidationError(err):
		fmt.Fprintf(a.errOut, "ERROR: %v\nUsage: %s\n", err, synopsis(name))
		return false
	case err != nil:
		fmt.Fprintf(a.errOut, "ERROR: %v\n", err)
		return false
	}
	if err := res.WriteTo(a.out, a.errOut); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Failed to write command output")
	}
	return false
}
