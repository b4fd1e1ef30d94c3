package container

import (
	"context"
	"strings"
	"testing"
)

func TestTeardownAskAcceptsOnlyYesNo(t *testing.T) {
	runner := &fakeRunner{}
	l := newTestLauncher(runner)

	in := strings.NewReader("maybe\nYES\n  Y \n")
	var out strings.Builder

	if err := l.Teardown(context.Background(), TeardownAsk, in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two rejected answers, then the trimmed, lowercased "y".
	if got := strings.Count(out.String(), "Stop and remove the container?"); got != 3 {
		t.Fatalf("expected 3 prompts, got %d:\n%s", got, out.String())
	}
	if len(runner.runCalls) != 1 || !strings.HasPrefix(runner.runCalls[0], "docker-compose down") {
		t.Fatalf("expected docker-compose down, got %v", runner.runCalls)
	}
}

func TestTeardownAskNoLeavesContainer(t *testing.T) {
	runner := &fakeRunner{}
	l := newTestLauncher(runner)

	in := strings.NewReader("n\n")
	var out strings.Builder

	if err := l.Teardown(context.Background(), TeardownAsk, in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.runCalls) != 0 {
		t.Fatalf("expected no runtime calls, got %v", runner.runCalls)
	}
}

func TestTeardownNonInteractiveModes(t *testing.T) {
	for _, tc := range []struct {
		mode      TeardownMode
		wantCalls int
	}{
		{TeardownYes, 1},
		{TeardownNo, 0},
	} {
		runner := &fakeRunner{}
		l := newTestLauncher(runner)

		// No reader is consulted in non-interactive modes.
		if err := l.Teardown(context.Background(), tc.mode, nil, nil); err != nil {
			t.Fatalf("mode %s: unexpected error: %v", tc.mode, err)
		}
		if len(runner.runCalls) != tc.wantCalls {
			t.Fatalf("mode %s: expected %d runner calls, got %v", tc.mode, tc.wantCalls, runner.runCalls)
		}
	}
}

func TestParseTeardownMode(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    TeardownMode
		wantErr bool
	}{
		{"ask", TeardownAsk, false},
		{" YES ", TeardownYes, false},
		{"No", TeardownNo, false},
		{"sometimes", "", true},
		{"", "", true},
	} {
		got, err := ParseTeardownMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTeardownMode(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTeardownMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTeardownMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
