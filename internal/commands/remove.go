package commands

import (
	"strings"

	"github.com/agentstation/shelf/pkg/books"
)

// RemoveTarget selects which field REMOVE matches against.
type RemoveTarget string

// Remove targets.
const (
	RemoveByTitle  RemoveTarget = "TITLE"
	RemoveByAuthor RemoveTarget = "AUTHOR"
)

// RemoveCommand deletes books by exact title or by author.
type RemoveCommand struct {
	target RemoveTarget
	value  string
	parsed bool
}

// Type implements Command.
func (c *RemoveCommand) Type() Type { return TypeRemove }

// Target returns the parsed removal target.
func (c *RemoveCommand) Target() RemoveTarget { return c.target }

// Value returns the parsed removal value.
func (c *RemoveCommand) Value() string { return c.value }

// Parse accepts "TITLE <value...>" or "AUTHOR <value...>". Runs of
// whitespace inside the value collapse to a single space.
func (c *RemoveCommand) Parse(argument string) error {
	fields := strings.Fields(argument)
	if len(fields) == 0 {
		return reject(TypeRemove, argument, "expected TITLE or AUTHOR followed by a value")
	}

	target := RemoveTarget(fields[0])
	switch target {
	case RemoveByTitle, RemoveByAuthor:
	default:
		return reject(TypeRemove, argument, "expected TITLE or AUTHOR")
	}
	if len(fields) < 2 {
		return reject(TypeRemove, argument, "missing "+strings.ToLower(string(target))+" to remove")
	}

	c.target = target
	c.value = strings.Join(fields[1:], " ")
	c.parsed = true
	return nil
}

// Execute removes the matching books and reports the outcome.
func (c *RemoveCommand) Execute(lib Library) *Result {
	mustExecutable(TypeRemove, c.parsed, lib)

	res := &Result{}
	switch c.target {
	case RemoveByAuthor:
		n := lib.RemoveWhere(func(b *books.Book) bool { return b.HasAuthor(c.value) })
		res.Printf("%d books removed for author: %s", n, c.value)
	default:
		// Titles are unique within a library; only the first match goes.
		removed := false
		lib.RemoveWhere(func(b *books.Book) bool {
			if !removed && b.Title() == c.value {
				removed = true
				return true
			}
			return false
		})
		if removed {
			res.Printf("%s: removed successfully.", c.value)
		} else {
			res.Printf("%s: not found.", c.value)
		}
	}
	return res
}
