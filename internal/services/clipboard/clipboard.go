// Package clipboard copies rendered reports to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable reports that no clipboard utility is present on this system.
var ErrUnavailable = errors.New("system clipboard unavailable")

// Copier copies textual data to a clipboard.
type Copier interface {
	Copy(text string) error
}

// SystemCopier writes to the operating system clipboard.
type SystemCopier struct{}

// NewSystemCopier constructs a SystemCopier.
func NewSystemCopier() *SystemCopier {
	return &SystemCopier{}
}

// Copy replaces the clipboard contents with text.
func (copier *SystemCopier) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if writeError := clipboard.WriteAll(text); writeError != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, writeError)
	}
	return nil
}

var _ Copier = (*SystemCopier)(nil)
