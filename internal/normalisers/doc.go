// Package normalisers holds the value normalisers applied to document
// fields. Each subpackage handles one kind of value:
//
//   - date: epoch and free-text dates
package normalisers
