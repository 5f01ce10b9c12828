package handoff

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

var ErrClipboardUnavailable = errors.New("no clipboard available")

// Swapped in tests
var (
	clipboardWriteAll    = clipboard.WriteAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
)

// CopyToClipboard places text on the system clipboard
func CopyToClipboard(text string) error {
	if clipboardUnsupported() {
		return ErrClipboardUnavailable
	}
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
