// Package clipboard is the boundary for copying text to the system clipboard.
package clipboard

import (
	"fmt"
	"strings"

	"addonlist/internal/logging"

	"github.com/atotto/clipboard"
)

// Writer copies text to a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// WriteAll copies text to the system clipboard.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	logging.Clipboard("copied %d bytes", len(text))
	return nil
}

// Memory is an in-process clipboard for tests and embedding callers.
type Memory struct {
	Text string
}

// WriteAll stores text.
func (m *Memory) WriteAll(text string) error {
	m.Text = text
	return nil
}

// Default returns the system clipboard. Without a clipboard utility every
// write fails, so callers report the copy as failed.
func Default() Writer {
	if clipboard.Unsupported {
		logging.Get(logging.CategoryClipboard).Warn("system clipboard unsupported, copies will fail")
	}
	return System{}
}

// JoinLines joins lines with a newline separator and a trailing newline.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
