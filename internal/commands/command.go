// Package commands implements the library commands (ADD, LIST, GROUP,
// REMOVE, SEARCH). Every command parses its argument text first and is
// executed against a Library only after a successful parse.
package commands

import (
	"context"
	"strconv"
	"strings"

	"github.com/agentstation/shelf/pkg/books"
	"github.com/agentstation/shelf/pkg/errors"
)

// Type identifies a command variant by its user-facing name.
type Type int

// Command types.
const (
	TypeAdd Type = iota
	TypeList
	TypeGroup
	TypeRemove
	TypeSearch
)

var typeNames = map[Type]string{
	TypeAdd:    "ADD",
	TypeList:   "LIST",
	TypeGroup:  "GROUP",
	TypeRemove: "REMOVE",
	TypeSearch: "SEARCH",
}

// String returns the command name as typed by the user.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Types returns all command types in declaration order.
func Types() []Type {
	return []Type{TypeAdd, TypeList, TypeGroup, TypeRemove, TypeSearch}
}

// ParseType resolves a command name. Names are case-sensitive.
func ParseType(name string) (Type, error) {
	for _, t := range Types() {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, errors.NewNotFoundError("command", name)
}

// Library is the record collection a command reads and mutates.
// *books.Collection implements it.
type Library interface {
	All() []*books.Book
	Append(books ...*books.Book)
	RemoveWhere(pred func(*books.Book) bool) int
	Len() int
}

var _ Library = (*books.Collection)(nil)

// Command is a parsed, executable library command.
type Command interface {
	// Type returns the command variant.
	Type() Type

	// Parse validates argument and stores the typed parameters. A non-nil
	// error means the argument was rejected and the command must not be
	// executed; the error names the offending input.
	Parse(argument string) error

	// Execute runs the command against lib. It panics if the command has
	// not been parsed successfully or lib is nil.
	Execute(lib Library) *Result
}

// options carries collaborators shared by all command variants.
type options struct {
	ctx context.Context
}

// Option configures commands created by New or NewOf.
type Option func(*options)

// WithContext sets the context whose logger receives command diagnostics.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{ctx: context.Background()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewOf returns an unparsed command of type t.
func NewOf(t Type, opts ...Option) (Command, error) {
	o := newOptions(opts)
	switch t {
	case TypeAdd:
		return &AddCommand{opts: o}, nil
	case TypeList:
		return &ListCommand{}, nil
	case TypeGroup:
		return &GroupCommand{}, nil
	case TypeRemove:
		return &RemoveCommand{}, nil
	case TypeSearch:
		return &SearchCommand{}, nil
	default:
		return nil, errors.NewNotFoundError("command", t.String())
	}
}

// New selects the command variant by name and parses argument. It returns
// a *errors.NotFoundError for an unknown name and the parse error for a
// rejected argument.
func New(name, argument string, opts ...Option) (Command, error) {
	t, err := ParseType(name)
	if err != nil {
		return nil, err
	}
	cmd, err := NewOf(t, opts...)
	if err != nil {
		return nil, err
	}
	if err := cmd.Parse(argument); err != nil {
		return nil, err
	}
	return cmd, nil
}

// mustExecutable enforces the Execute preconditions.
func mustExecutable(t Type, parsed bool, lib Library) {
	if !parsed {
		panic("programming error: " + t.String() + " executed before a successful parse")
	}
	if c, ok := lib.(*books.Collection); lib == nil || ok && c == nil {
		panic("programming error: " + t.String() + " executed with a nil library")
	}
}

// reject builds the parse-stage error for a command argument.
func reject(t Type, argument, message string) error {
	return errors.NewValidationError(strings.ToLower(t.String())+" argument", argument,
		message+": "+strconv.Quote(argument))
}
