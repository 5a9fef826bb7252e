package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
)

// Result is the analyzer's stdout contract: one JSON object, exit 0.
type Result struct {
	FullText       string         `json:"fullText"`
	Summary        string         `json:"summary"`
	Topics         []entity.Topic `json:"topics"`
	ServerFilename string         `json:"serverFilename"`
	Error          string         `json:"error,omitempty"`
}

// ProcessError reports an analyzer run that exited nonzero or timed out.
// Diagnostics carries captured stderr only; stdout is never surfaced to
// clients on failure.
type ProcessError struct {
	ExitCode    int
	Diagnostics string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("analyzer exited with code %d", e.ExitCode)
}

// ParseError reports stdout that was not the expected JSON object.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed analyzer output: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Analyzer turns an uploaded file path into extracted text, a summary and
// topic tags.
type Analyzer interface {
	Analyze(ctx context.Context, filePath string) (*Result, error)
}

// CommandAnalyzer runs the analysis as an external process bound to the file
// path. Both output streams are drained concurrently so neither pipe buffer
// can fill and deadlock the child, regardless of output volume.
type CommandAnalyzer struct {
	Command string
	Args    []string
	Timeout time.Duration
}

var _ Analyzer = &CommandAnalyzer{}

func NewCommandAnalyzer(command string, args []string, timeout time.Duration) *CommandAnalyzer {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &CommandAnalyzer{
		Command: command,
		Args:    args,
		Timeout: timeout,
	}
}

func (a *CommandAnalyzer) Analyze(ctx context.Context, filePath string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	args := append(append([]string{}, a.Args...), filePath)
	cmd := exec.CommandContext(ctx, a.Command, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start analyzer: %w", err)
	}

	var outBuf, errBuf bytes.Buffer
	g := new(errgroup.Group)
	g.Go(func() error {
		_, err := io.Copy(&outBuf, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&errBuf, stderr)
		return err
	})

	// Drain both pipes to EOF before Wait, per os/exec contract.
	drainErr := g.Wait()
	waitErr := cmd.Wait()

	if waitErr != nil {
		exitCode := -1
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return nil, &ProcessError{
			ExitCode:    exitCode,
			Diagnostics: strings.TrimSpace(errBuf.String()),
		}
	}
	if drainErr != nil {
		return nil, fmt.Errorf("drain analyzer output: %w", drainErr)
	}

	var result Result
	if err := json.Unmarshal(outBuf.Bytes(), &result); err != nil {
		return nil, &ParseError{Cause: err}
	}
	// Some analyzers report failure as {"error": ...} with exit 0.
	if result.Error != "" {
		return nil, &ProcessError{ExitCode: 0, Diagnostics: result.Error}
	}

	return &result, nil
}
