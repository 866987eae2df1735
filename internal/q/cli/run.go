package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

type Options struct {
	// Args is the argv excluding the program name (typically os.Args[1:]).
	Args []string

	// In/Out/Err override standard I/O. If nil, defaults are used.
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Context is passed to a command handler.
//
// Positional args are in Args. Flag values are usually read through variables bound when the command was built; Flags reports which ones were set.
type Context struct {
	context.Context

	Command *Command
	Args    []string
	Flags   *pflag.FlagSet

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes a command tree as a CLI program and returns a process exit code: 0 on success, 2 for usage errors, and 1 (or an ExitCoder's code) for
// handler errors.
func Run(ctx context.Context, root *Command, opts Options) int {
	if root == nil {
		panic("cli: Run called with nil root")
	}
	if root.Name == "" {
		panic("cli: Run called with root.Name empty")
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	selected, rest := selectCommand(root, opts.Args)
	flags := selected.activeFlags()
	if err := flags.Parse(rest); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			writeHelp(out, root, selected)
			return 0
		}
		printUsageError(root, selected, UsageError{Message: err.Error()}, errOut)
		return 2
	}
	args := flags.Args()

	if selected.Run == nil {
		if len(args) == 0 {
			printUsageError(root, selected, Usagef("missing required subcommand"), errOut)
			return 2
		}
		printUsageError(root, selected, Usagef("unknown subcommand: %s", args[0]), errOut)
		return 2
	}

	if selected.Args != nil {
		if err := selected.Args(args); err != nil {
			return exitForError(root, selected, err, errOut, 2)
		}
	}

	c := &Context{
		Context: ctx,
		Command: selected,
		Args:    args,
		Flags:   flags,
		In:      in,
		Out:     out,
		Err:     errOut,
	}
	if err := selected.Run(c); err != nil {
		return exitForError(root, selected, err, errOut, 1)
	}
	return 0
}

// selectCommand walks argv from root, descending into child commands until the first token that is neither a flag nor a child name. It returns the
// selected command and the tokens left for flag parsing.
func selectCommand(root *Command, argv []string) (*Command, []string) {
	selected := root
	var rest []string
	for i := 0; i < len(argv); i++ {
		token := argv[i]
		if token == "--" {
			return selected, append(rest, argv[i:]...)
		}
		if isFlagToken(token) {
			rest = append(rest, token)
			if takesValue(selected.activeFlags(), token) && i+1 < len(argv) {
				i++
				rest = append(rest, argv[i])
			}
			continue
		}
		child := selected.Lookup(token)
		if child == nil {
			return selected, append(rest, argv[i:]...)
		}
		selected = child
	}
	return selected, rest
}

func isFlagToken(token string) bool {
	return strings.HasPrefix(token, "-") && token != "-" // "-" is a valid positional arg.
}

// takesValue reports whether token names a known flag whose value is in the next token.
func takesValue(fs *pflag.FlagSet, token string) bool {
	if strings.Contains(token, "=") {
		return false
	}
	var f *pflag.Flag
	if name, ok := strings.CutPrefix(token, "--"); ok {
		f = fs.Lookup(name)
	} else {
		shorts := token[1:]
		f = fs.ShorthandLookup(shorts[len(shorts)-1:])
	}
	return f != nil && f.NoOptDefVal == ""
}

// exitForError prints err and returns its exit code. Errors without an ExitCoder use fallback; a code of 2 also prints help.
func exitForError(root, cmd *Command, err error, errOut io.Writer, fallback int) int {
	code := fallback
	var ec ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	switch code {
	case 0:
		return 0
	case 2:
		printUsageError(root, cmd, err, errOut)
	default:
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(errOut, msg)
		}
	}
	return code
}

func printUsageError(root, cmd *Command, err error, errOut io.Writer) {
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(errOut, msg)
		fmt.Fprintln(errOut)
	}
	writeHelp(errOut, root, cmd)
}
