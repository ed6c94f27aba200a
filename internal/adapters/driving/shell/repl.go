package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Prompt is printed before each line is read.
const Prompt = "meow> "

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\033[H\033[2J"

// RunREPL reads commands line by line from in until exit, EOF or ctx is done.
// It is used when stdin is not a terminal.
func RunREPL(ctx context.Context, session *Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Meow shell activated.")
	fmt.Fprintln(out, "Type 'help' for commands, 'exit' or 'quit' to leave.")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			fmt.Fprintln(out, "\nBye.")
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		res, err := session.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			if res != nil && res.Report != nil {
				WriteReport(out, res.Report)
			}
			continue
		}

		switch res.Command.Kind {
		case KindExit:
			fmt.Fprintln(out, "Bye.")
			return nil
		case KindClear:
			fmt.Fprint(out, clearScreen)
			continue
		case KindIndex:
			WriteReport(out, res.Report)
			continue
		}

		if res.Outcome != nil {
			WriteOutcome(out, res.Outcome)
			if res.Message != "" && !res.Outcome.Empty() {
				fmt.Fprintln(out, res.Message)
			}
			continue
		}
		if res.Message != "" {
			fmt.Fprintln(out, res.Message)
		}
	}
}
