package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL needs.
type execIface interface {
	helpText() string
	execute(ctx context.Context, cmd string, args []string) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// "help" lists the commands available to the current user; the loop ends on
// EOF, "exit", "quit" or a cancelled context. Command errors are printed and
// the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ma %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch cmd := strings.ToLower(parts[0]); cmd {
		case "help":
			printlnFn(a.helpText())
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			if err := a.execute(ctx, cmd, parts[1:]); err != nil {
				printlnFn("Error:", describe(err))
			}
		}
	}
}
