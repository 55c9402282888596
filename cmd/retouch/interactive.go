package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

type stringList []string

func (l *stringList) String() string     { return strings.Join(*l, "; ") }
func (l *stringList) Set(v string) error { *l = append(*l, v); return nil }

type interactiveCmd struct {
	*root
	fs       *flag.FlagSet
	commands stringList
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	cmd := &interactiveCmd{root: r.subcommand("interactive"), fs: fs, in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	fs.Usage = usageFunc(cmd)
	fs.Var(&cmd.commands, "e", "command to run before reading stdin (repeatable)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	// Remaining arguments name a file to open first.
	if fs.NArg() > 0 {
		cmd.commands = append(stringList{"load " + fs.Arg(0)}, cmd.commands...)
	}
	return cmd, nil
}

func (i *interactiveCmd) Run() error {
	s := newSession(i.root, i.out)
	for _, line := range i.commands {
		if done := i.runLine(s, line); done {
			return nil
		}
	}

	fmt.Fprintln(i.out, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(i.in)
	for {
		fmt.Fprint(i.out, "> ")
		if !scanner.Scan() {
			break
		}
		if done := i.runLine(s, scanner.Text()); done {
			break
		}
	}
	return scanner.Err()
}

// runLine executes one line and reports whether the session should end.
// Errors are printed and do not stop the session.
func (i *interactiveCmd) runLine(s *session, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}
	err := s.exec(strings.Fields(line))
	if errors.Is(err, errExit) {
		return true
	}
	if err != nil {
		fmt.Fprintln(i.errOut, err)
	}
	return false
}
