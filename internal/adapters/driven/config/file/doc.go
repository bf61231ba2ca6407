// Package file provides the TOML file implementation of driven.ConfigStore.
//
// The plugin configuration lives in ~/.sercha/plugin.toml by default:
//
//	crawler_name = "intranet"
//
//	[fetch]
//	timeout_seconds = 30
//	requests_per_second = 5.0
//	burst = 10
//
// Nested tables are flattened into dot-notation keys ("fetch.burst").
// The flattened map is what the plugin receives as its general settings.
package file
