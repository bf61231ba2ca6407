// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Stage: One step of the document update pipeline
//   - ContentFetcher: Retrieves fallback content for documents without a body
//   - JournalStore: Persists the outcome of each processed document
//   - ConfigStore: Plugin configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or stage package
package driven
