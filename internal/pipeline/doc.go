// Package pipeline resolves a batch of studies through any Resolver,
// in parallel, and hands outcomes back in input order.
//
// The only contract to implement is engine.Resolver (Resolve).
// This keeps the pipeline swappable and testable.
package pipeline
