// Package input reads validated values typed at the terminal.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Int prompts until the user types an integer >= least. It fails only when
// the input ends or cannot be read.
func Int(in *bufio.Reader, out io.Writer, prompt string, least int) (int, error) {
	for {
		fmt.Fprint(out, prompt)

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return 0, fmt.Errorf("failed to read %q: %w", strings.TrimSpace(prompt), err)
		}

		value, convErr := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case convErr != nil:
			fmt.Fprintln(out, "Invalid input! Input must be of type int")
		case value < least:
			fmt.Fprintf(out, "Input must be greater than or equal to %d\n", least)
		default:
			return value, nil
		}

		if err != nil {
			return 0, fmt.Errorf("failed to read %q: %w", strings.TrimSpace(prompt), err)
		}
	}
}
