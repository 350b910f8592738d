// Package graph implements the directed-graph agent execution engine: nodes
// connected by (optionally conditional) edges, a builder with fail-fast
// validation, and a strictly sequential executor that records per-node
// results, propagates skips past failures and never crashes the overall run
// on a single node error.
//
// Terminal marker edges are a first-class edge kind used purely to stop
// propagation past a designated point; they are clearer than a generic
// predicate that happens to always return false.
package graph
