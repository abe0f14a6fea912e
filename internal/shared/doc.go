// Package shared holds helpers used by several packages that belong to no
// single layer. Its testutil subpackage provides a buffered slog handler
// for asserting on structured log output in tests.
package shared
