// Package date normalises date-like field values into the canonical
// MM/DD/YYYY HH:MM:SS form.
//
// Unparseable input never produces an error: both functions return
// domain.InvalidDate instead, and callers store that sentinel as is.
package date
