// Package internal contains the core implementation packages for passforge.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the passforge CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - composer: Composition rules, character classes and password assembly
//   - random: Seeded and crypto-backed random sources
//   - persist: Text, Word document and clipboard destinations
//   - config: Configuration loading, validation and change watching
//   - errors: Typed errors with codes, context and suggestions
//   - logging: Structured logging on top of log/slog
//   - validation: Destination path checks and input sanitizing
//   - version: Build information
//
// # Inter-Package Communication
//
// The composer depends only on errors and random. It never sees where a
// password ends up; the cmd package hands results to a persist.Store, which
// dispatches on the destination format.
//
// # Testing Strategy
//
//   - Table-driven unit tests with testify
//   - Property tests with gopter behind the "property" build tag
//   - Fuzz tests for path validation and input sanitizing
//
// For detailed documentation, see the individual package documentation.
package internal
