package persist

import (
	"context"
	"os"

	perrors "github.com/conneroisu/passforge/internal/errors"
	"github.com/conneroisu/passforge/internal/validation"
)

// fileMode keeps saved passwords private to the current user.
const fileMode os.FileMode = 0o600

// TextPersister writes the password to a .txt file.
type TextPersister struct{}

// Persist implements Persister.
func (TextPersister) Persist(ctx context.Context, password string, dest Destination) (string, error) {
	return writeFile(ctx, dest.Path, ".txt", []byte(password))
}

// prepareFile checks the context and the path and returns the final file
// name with ext added if it was missing.
func prepareFile(ctx context.Context, path, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := validation.ValidatePath(path); err != nil {
		return "", err
	}

	return validation.EnsureExtension(path, ext), nil
}

func writeFile(ctx context.Context, path, ext string, data []byte) (string, error) {
	name, err := prepareFile(ctx, path, ext)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(name, data, fileMode); err != nil {
		return "", perrors.WrapIO(err, perrors.ErrCodeWriteFailed, "failed to write "+name).
			WithContext("path", name)
	}

	return name, nil
}
