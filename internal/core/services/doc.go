// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - CrawlerPlugin: the per-document update contract used by the host
//   - DocumentProcessor: runs the plugin for one document and journals the outcome
//
// Services are pure Go with no CGO.
package services
