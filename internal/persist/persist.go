// Package persist hands a generated password to its destination: a plain
// text file, a Word document, or the system clipboard.
//
// Every destination kind sits behind the same Persister interface and a
// Store dispatches on the Destination's Format, so callers never branch on
// where a password is going.
package persist

import (
	"context"
	"strings"

	perrors "github.com/conneroisu/passforge/internal/errors"
)

// Format identifies a kind of destination.
type Format string

const (
	FormatText      Format = "text"
	FormatDocx      Format = "docx"
	FormatClipboard Format = "clipboard"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatDocx, FormatClipboard}

// ClipboardLocation is reported as the location of clipboard saves.
const ClipboardLocation = "clipboard"

var formatAliases = map[string]Format{
	"text":      FormatText,
	"txt":       FormatText,
	"plain":     FormatText,
	"docx":      FormatDocx,
	"word":      FormatDocx,
	"clipboard": FormatClipboard,
	"clip":      FormatClipboard,
}

// ParseFormat parses a format name. Common aliases such as "txt" and "word"
// are accepted.
func ParseFormat(s string) (Format, error) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		names := make([]string, len(Formats))
		for i, f := range Formats {
			names[i] = string(f)
		}
		return "", perrors.ErrUnknownFormat(s, names)
	}
	return f, nil
}

// IsFile reports whether the format writes to a file.
func (f Format) IsFile() bool {
	return f == FormatText || f == FormatDocx
}

// Destination says where a password should go. Path is ignored for the
// clipboard.
type Destination struct {
	Path   string
	Format Format
}

// String renders the destination for messages.
func (d Destination) String() string {
	if d.Format == FormatClipboard {
		return ClipboardLocation
	}
	return string(d.Format) + ":" + d.Path
}

// Persister stores a password at a destination and reports the final
// location, such as the file name after an extension was added.
type Persister interface {
	Persist(ctx context.Context, password string, dest Destination) (string, error)
}

// PersisterFunc adapts a function to the Persister interface.
type PersisterFunc func(ctx context.Context, password string, dest Destination) (string, error)

// Persist implements Persister.
func (f PersisterFunc) Persist(ctx context.Context, password string, dest Destination) (string, error) {
	return f(ctx, password, dest)
}
