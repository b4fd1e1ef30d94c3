package container

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
)

// TeardownMode selects how the end-of-run teardown decision is made.
type TeardownMode string

const (
	// TeardownAsk prompts interactively on the console.
	TeardownAsk TeardownMode = "ask"
	// TeardownYes always stops and removes the container.
	TeardownYes TeardownMode = "yes"
	// TeardownNo always leaves the container running.
	TeardownNo TeardownMode = "no"
)

// ParseTeardownMode validates a configured mode string.
func ParseTeardownMode(s string) (TeardownMode, error) {
	switch TeardownMode(strings.ToLower(strings.TrimSpace(s))) {
	case TeardownAsk:
		return TeardownAsk, nil
	case TeardownYes:
		return TeardownYes, nil
	case TeardownNo:
		return TeardownNo, nil
	}
	return "", fmt.Errorf("invalid teardown mode %q (want ask, yes or no)", s)
}

// Teardown resolves the decision for the given mode and, when affirmative,
// brings the compose service down.
func (l *Launcher) Teardown(ctx context.Context, mode TeardownMode, in io.Reader, out io.Writer) error {
	var remove bool
	switch mode {
	case TeardownYes:
		remove = true
	case TeardownNo:
		remove = false
	default:
		answer, err := askYesNo(in, out, "Stop and remove the container? (y/n): ")
		if err != nil {
			return err
		}
		remove = answer
	}

	if !remove {
		log.Printf("INFO: the Postgres container is left running.")
		return nil
	}
	return l.Down(ctx)
}

// askYesNo re-prompts without limit until the trimmed, lowercased input is
// exactly "y" or "n".
func askYesNo(in io.Reader, out io.Writer, prompt string) (bool, error) {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false, fmt.Errorf("reading teardown answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprintln(out, "Please answer 'y' or 'n'.")
		if err == io.EOF {
			return false, fmt.Errorf("reading teardown answer: %w", err)
		}
	}
}
