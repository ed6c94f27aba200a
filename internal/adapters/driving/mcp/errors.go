// Package mcp provides an MCP (Model Context Protocol) server adapter for meow.
// It lets AI assistants search the local index and refresh it.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrIndexUnavailable is returned by the index tool when no indexer is wired.
var ErrIndexUnavailable = errors.New("mcp: indexing is not available")
