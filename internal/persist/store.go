package persist

import (
	"context"

	perrors "github.com/conneroisu/passforge/internal/errors"
	"github.com/conneroisu/passforge/internal/logging"
)

// Store routes a password to the Persister registered for a destination's
// format.
type Store struct {
	persisters map[Format]Persister
	logger     logging.Logger
}

// NewStore creates a store with the text, docx and system clipboard
// persisters registered.
func NewStore(logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	s := &Store{
		persisters: make(map[Format]Persister, len(Formats)),
		logger:     logger.WithComponent("persist"),
	}
	s.Register(FormatText, TextPersister{})
	s.Register(FormatDocx, DocxPersister{})
	s.Register(FormatClipboard, ClipboardPersister{})

	return s
}

// Register installs p for format f, replacing any existing persister.
func (s *Store) Register(f Format, p Persister) {
	s.persisters[f] = p
}

// Persist stores password at dest and returns where it ended up.
func (s *Store) Persist(ctx context.Context, password string, dest Destination) (string, error) {
	p, ok := s.persisters[dest.Format]
	if !ok {
		names := make([]string, 0, len(s.persisters))
		for _, f := range Formats {
			if _, ok := s.persisters[f]; ok {
				names = append(names, string(f))
			}
		}
		return "", perrors.ErrUnknownFormat(string(dest.Format), names)
	}

	location, err := p.Persist(ctx, password, dest)
	if err != nil {
		s.logger.Warn(ctx, err, "Failed to save password",
			"format", dest.Format,
			"path", logging.SanitizeForLog(dest.Path))
		return "", err
	}

	s.logger.Info(ctx, "Password saved", "format", dest.Format, "location", location)

	return location, nil
}

// PersistAll stores password at each destination in order and returns the
// locations written. It stops at the first failure.
func (s *Store) PersistAll(ctx context.Context, password string, dests ...Destination) ([]string, error) {
	locations := make([]string, 0, len(dests))
	for _, dest := range dests {
		location, err := s.Persist(ctx, password, dest)
		if err != nil {
			return locations, err
		}
		locations = append(locations, location)
	}
	return locations, nil
}
