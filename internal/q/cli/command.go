package cli

import (
	"io"

	"github.com/spf13/pflag"
)

// RunFunc is a command handler.
type RunFunc func(c *Context) error

// ArgsFunc validates positional args. It should return a UsageError for user-facing usage mistakes.
type ArgsFunc func(args []string) error

// Command is one node in a command tree.
type Command struct {
	// Name is the token used to invoke this command (e.g. "diff" in "redline diff").
	Name string

	// Aliases are additional tokens that invoke this command.
	Aliases []string

	Short   string
	Long    string
	Example string

	Args ArgsFunc // optional
	Run  RunFunc  // optional

	parent          *Command
	children        []*Command
	localFlags      *pflag.FlagSet
	persistentFlags *pflag.FlagSet
}

// AddCommand adds child commands under c.
func (c *Command) AddCommand(children ...*Command) {
	for _, child := range children {
		if child == nil {
			panic("cli: AddCommand called with nil child")
		}
		if child.parent != nil {
			panic("cli: AddCommand called with a child already attached to a parent")
		}
		if child.Name == "" {
			panic("cli: AddCommand called with a child with empty Name")
		}
		c.children = append(c.children, child)
		child.parent = c
	}
}

// Commands returns the direct children of c.
func (c *Command) Commands() []*Command {
	return append([]*Command(nil), c.children...)
}

// Flags returns the flags that only apply to c.
func (c *Command) Flags() *pflag.FlagSet {
	if c.localFlags == nil {
		c.localFlags = newFlagSet(c.Name)
	}
	return c.localFlags
}

// PersistentFlags returns flags inherited by c and its descendants.
func (c *Command) PersistentFlags() *pflag.FlagSet {
	if c.persistentFlags == nil {
		c.persistentFlags = newFlagSet(c.Name)
	}
	return c.persistentFlags
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// activeFlags merges the persistent flags of c's ancestors with c's own flags. The returned set shares flag values with the sets it was built from.
func (c *Command) activeFlags() *pflag.FlagSet {
	fs := newFlagSet(c.Name)
	for _, cmd := range c.pathFromRoot() {
		if cmd.persistentFlags != nil {
			fs.AddFlagSet(cmd.persistentFlags)
		}
	}
	if c.localFlags != nil {
		fs.AddFlagSet(c.localFlags)
	}
	return fs
}

// Lookup returns the child of c named token, by name or alias, or nil.
func (c *Command) Lookup(token string) *Command {
	for _, child := range c.children {
		if child.Name == token {
			return child
		}
		for _, alias := range child.Aliases {
			if alias == token {
				return child
			}
		}
	}
	return nil
}

func (c *Command) pathFromRoot() []*Command {
	var reversed []*Command
	for cur := c; cur != nil; cur = cur.parent {
		reversed = append(reversed, cur)
	}
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return reversed
}
