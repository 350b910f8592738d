// Package core provides the foundational domain types shared by the graph
// engine and its surrounding packages. It defines:
//
//   - ContentBlock (the closed sum type for agent output segments)
//   - InvocationResult / NodeResult (per-call and per-node execution records)
//   - Status / RunStatus (node and run lifecycle states)
//   - TokenUsage (accumulated usage counters)
//   - RequestContext (per-request correlation passed explicitly through the
//     pipeline instead of ambient globals)
//
// The package intentionally keeps implementation concerns (gateway transport,
// graph orchestration, aggregation) out of scope so that higher layers depend
// only on small, stable types.
package core
