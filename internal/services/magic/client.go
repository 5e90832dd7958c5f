package magic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Result carries what file(1) reported for one path. MIMEType is kept for
// diagnostics; classification branches on Description.
type Result struct {
	MIMEType    string
	Description string
}

// Sniffer produces a content-type result for a file. An error means the sniff
// was inconclusive; callers degrade to extension lookup and never treat it as
// fatal.
type Sniffer interface {
	Sniff(ctx context.Context, path string) (Result, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Output(ctx context.Context, binary string, args []string) (string, error)
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	// file(1) chatter on stderr is noise; classification reads stdout only.
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(executor Executor) Option {
	return func(c *Client) {
		if executor != nil {
			c.exec = executor
		}
	}
}

// Client wraps file(1) lookups.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a client invoking the given binary with a per-sniff deadline.
// An empty binary falls back to "file"; a non-positive timeout disables the
// deadline.
func New(binary string, timeoutSeconds int, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "file"
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Binary returns the configured executable name.
func (c *Client) Binary() string {
	return c.binary
}

// Sniff asks file(1) for the terse MIME type and then the verbose description
// of path. Both invocations share one deadline; failure or expiry of either
// fails the whole sniff.
func (c *Client) Sniff(ctx context.Context, path string) (Result, error) {
	if strings.TrimSpace(path) == "" {
		return Result{}, errors.New("magic sniff: empty path")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	mimeType, err := c.exec.Output(ctx, c.binary, []string{"--brief", "--mime-type", "--", path})
	if err != nil {
		return Result{}, fmt.Errorf("magic mime lookup: %w", err)
	}
	description, err := c.exec.Output(ctx, c.binary, []string{"--brief", "--", path})
	if err != nil {
		return Result{}, fmt.Errorf("magic describe: %w", err)
	}

	return Result{
		MIMEType:    strings.TrimSpace(mimeType),
		Description: strings.TrimSpace(description),
	}, nil
}
