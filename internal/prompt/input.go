// Package prompt reads interactive console input behind a swappable Prompter.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
)

// ErrCancelled is returned when the user aborts a prompt with Ctrl+C or EOF.
var ErrCancelled = errors.New("cancelled by user")

// Prompter interface wraps basic prompting functionality for testability
type Prompter interface {
	Prompt(string) (string, error)
	Close() error
}

// LinerPrompter wraps liner.State to implement Prompter interface
type LinerPrompter struct {
	*liner.State
}

// NewLinerPrompter creates a new liner-based prompter
func NewLinerPrompter() Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinerPrompter{State: line}
}

// Prompt displays p and returns the entered line
func (l *LinerPrompter) Prompt(p string) (string, error) {
	result, err := l.State.Prompt(p)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return result, nil
}

// TextInputWithPrompter reads one trimmed line using a custom prompter
func TextInputWithPrompter(prompter Prompter, prompt string) (string, error) {
	coloredPrompt := color.CyanString(prompt + " ")
	result, err := prompter.Prompt(coloredPrompt)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("text input with prompter failed: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// Lazy opens the underlying prompter on first use so commands that never
// prompt do not take over the terminal.
type Lazy struct {
	open     func() Prompter
	prompter Prompter
}

// NewLazy wraps open in a Prompter that defers creation until the first Prompt call
func NewLazy(open func() Prompter) *Lazy {
	return &Lazy{open: open}
}

// Prompt opens the underlying prompter if needed and forwards the call
func (l *Lazy) Prompt(p string) (string, error) {
	if l.prompter == nil {
		l.prompter = l.open()
	}
	return l.prompter.Prompt(p) //nolint:wrapcheck // thin forwarder
}

// Close closes the underlying prompter if it was opened
func (l *Lazy) Close() error {
	if l.prompter == nil {
		return nil
	}
	return l.prompter.Close() //nolint:wrapcheck // thin forwarder
}
