// Package embedding holds helpers shared by the embedding adapters: a
// response decoder that accepts both vector shapes served by inference
// backends, and a rate-limiting decorator for bulk indexing.
package embedding
