package magic_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cubby/internal/services/magic"
)

type scriptedExecutor struct {
	outputs     []string
	errs        []error
	calls       [][]string
	binary      string
	sawDeadline bool
}

func (s *scriptedExecutor) Output(ctx context.Context, binary string, args []string) (string, error) {
	if _, ok := ctx.Deadline(); ok {
		s.sawDeadline = true
	}
	s.binary = binary
	s.calls = append(s.calls, args)
	idx := len(s.calls) - 1
	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	var out string
	if idx < len(s.outputs) {
		out = s.outputs[idx]
	}
	return out, err
}

func TestSniffReturnsTrimmedResult(t *testing.T) {
	executor := &scriptedExecutor{outputs: []string{"application/pdf\n", "PDF document, version 1.7\n"}}
	client := magic.New("file", 5, magic.WithExecutor(executor))

	result, err := client.Sniff(context.Background(), "/tmp/report")
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if result.MIMEType != "application/pdf" {
		t.Errorf("MIMEType = %q", result.MIMEType)
	}
	if result.Description != "PDF document, version 1.7" {
		t.Errorf("Description = %q", result.Description)
	}
	if len(executor.calls) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(executor.calls))
	}
	if got := strings.Join(executor.calls[0], " "); got != "--brief --mime-type -- /tmp/report" {
		t.Errorf("first invocation args = %q", got)
	}
	if got := strings.Join(executor.calls[1], " "); got != "--brief -- /tmp/report" {
		t.Errorf("second invocation args = %q", got)
	}
	if !executor.sawDeadline {
		t.Error("expected a deadline on the sniff context")
	}
}

func TestSniffFailsWhenMIMELookupFails(t *testing.T) {
	cause := errors.New("exec: file: not found")
	executor := &scriptedExecutor{errs: []error{cause}}
	client := magic.New("file", 5, magic.WithExecutor(executor))

	if _, err := client.Sniff(context.Background(), "/tmp/x"); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if len(executor.calls) != 1 {
		t.Fatalf("describe lookup should not run after mime failure; %d calls", len(executor.calls))
	}
}

func TestSniffFailsWhenDescribeFails(t *testing.T) {
	cause := errors.New("signal: killed")
	executor := &scriptedExecutor{outputs: []string{"text/plain", ""}, errs: []error{nil, cause}}
	client := magic.New("file", 5, magic.WithExecutor(executor))

	if _, err := client.Sniff(context.Background(), "/tmp/x"); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestSniffRejectsEmptyPath(t *testing.T) {
	client := magic.New("file", 5, magic.WithExecutor(&scriptedExecutor{}))
	if _, err := client.Sniff(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestNewDefaultsBinary(t *testing.T) {
	client := magic.New("   ", 0)
	if client.Binary() != "file" {
		t.Fatalf("Binary = %q, want file", client.Binary())
	}
}

func TestSniffWithoutTimeoutHasNoDeadline(t *testing.T) {
	executor := &scriptedExecutor{outputs: []string{"a", "b"}}
	client := magic.New("file", 0, magic.WithExecutor(executor))
	if _, err := client.Sniff(context.Background(), "/tmp/x"); err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if executor.sawDeadline {
		t.Fatal("timeout disabled; context should carry no deadline")
	}
}
