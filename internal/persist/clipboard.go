package persist

import (
	"context"

	"github.com/atotto/clipboard"

	perrors "github.com/conneroisu/passforge/internal/errors"
)

// ClipboardPersister copies the password to the system clipboard.
type ClipboardPersister struct {
	// Write replaces the system clipboard; nil uses clipboard.WriteAll.
	Write func(text string) error
}

// Persist implements Persister.
func (c ClipboardPersister) Persist(ctx context.Context, password string, _ Destination) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	write := c.Write
	if write == nil {
		if clipboard.Unsupported {
			return "", perrors.NewIOError(perrors.ErrCodeClipboard,
				"clipboard is not supported on this system", nil)
		}
		write = clipboard.WriteAll
	}

	if err := write(password); err != nil {
		return "", perrors.WrapIO(err, perrors.ErrCodeClipboard, "failed to copy password to clipboard")
	}

	return ClipboardLocation, nil
}
