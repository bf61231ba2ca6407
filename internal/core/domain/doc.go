// Package domain defines the core entities of the sercha crawler plugin.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A crawled document handed to the plugin by the host
//   - Content: The readable/writable body of a document
//   - Fields: The document's metadata, keyed by field name
//   - Value: A tagged scalar stored in Fields
//   - JournalEntry: The host-side record of one processed document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
