// Package memory provides in-memory implementations of the storage ports.
// They back service tests and the ":memory:" store path.
package memory
