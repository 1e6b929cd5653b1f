package commands

import (
	"strconv"
	"strings"
)

// ListMode selects how much of each book LIST prints.
type ListMode string

// List modes.
const (
	ListShort ListMode = "short"
	ListLong  ListMode = "long"
)

const emptyLibraryMessage = "The library has no book entries."

// ListCommand prints every book in the library.
type ListCommand struct {
	mode   ListMode
	parsed bool
}

// Type implements Command.
func (c *ListCommand) Type() Type { return TypeList }

// Mode returns the parsed list mode.
func (c *ListCommand) Mode() ListMode { return c.mode }

// Parse accepts an empty argument, "short" or "long", exactly.
func (c *ListCommand) Parse(argument string) error {
	switch ListMode(argument) {
	case "", ListShort:
		c.mode = ListShort
	case ListLong:
		c.mode = ListLong
	default:
		return reject(TypeList, argument, "expected short, long or blank")
	}
	c.parsed = true
	return nil
}

// Execute lists the library in the parsed mode.
func (c *ListCommand) Execute(lib Library) *Result {
	mustExecutable(TypeList, c.parsed, lib)

	res := &Result{}
	all := lib.All()
	if len(all) == 0 {
		res.Println(emptyLibraryMessage)
		return res
	}

	res.Println(strconv.Itoa(len(all)) + " books in library:")
	for i, b := range all {
		switch c.mode {
		case ListLong:
			if i > 0 {
				res.Println("")
			}
			res.Println(strings.Split(b.String(), "\n")...)
		default:
			res.Println(b.Title())
		}
	}
	return res
}
