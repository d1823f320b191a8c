package report

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// writeClipboard is replaced in tests.
//
//nolint:gochecknoglobals // Test seam for the system clipboard.
var writeClipboard = clipboard.WriteAll

// ErrClipboardUnavailable wraps failures to reach the system clipboard.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Copy puts the report summary on the system clipboard.
func Copy(r *Report) error {
	return CopyText(r.Summary())
}

// CopyText puts text on the system clipboard.
func CopyText(text string) error {
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	return nil
}
