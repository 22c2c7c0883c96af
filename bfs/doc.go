// Package bfs provides breadth-first search over the variables of a
// core.Graph, returning hop distances, parent links, and visit order.
//
// What
//
//   - Two variables are neighbors when some function node references both.
//     A hop therefore crosses variable → function → variable.
//   - BFS returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: map from variable → hops from start
//   - Parent: map from variable → its predecessor in the BFS tree
//   - Components partitions every variable of the graph into connected
//     blocks; blocks never share a function and can be solved independently.
//   - Hooks at three stages: OnEnqueue, OnDequeue, OnVisit (may abort).
//   - WithFilterNeighbor prunes individual hops; WithObjectiveOnly ignores
//     constraint functions as links.
//
// Determinism
//
//	Neighbors are expanded in edge insertion order (EdgesByVariable, then
//	EdgesByFunction), so the visit sequence is fully reproducible for a
//	given graph.
//
// Complexity (V = variables, E = edges)
//
//   - Time:   O(V + Σ_f deg(f)²) in the worst case; each function is
//     expanded once per variable it touches.
//   - Memory: O(V) for queue, Depth, Parent and the visited set.
//
// Errors
//
//   - ErrGraphNil               if the graph pointer is nil.
//   - ErrStartVariableNotFound  if the start variable has no edges.
//   - ErrOptionViolation        for an invalid Option (e.g. negative MaxDepth).
//   - ErrNeighbors              if a function disappears mid-traversal.
//   - Wrapped user-supplied hook errors from OnVisit, and ctx.Err() on cancellation.
package bfs
