// Package tree maintains the todo forest.
//
// Every function is pure: the input forest is never modified, and a
// mutation returns a new forest that shares untouched subtrees with the
// input, plus a flag telling whether anything changed. When nothing
// changed the input slice itself is returned, so callers can skip
// history snapshots and saves by checking the flag.
//
// # Completion
//
// A node with children is completed exactly when all of its children
// are. Leaves are set directly. Every mutation re-derives the flag for
// the touched node and each of its ancestors, deepest first.
//
// # Lookup
//
// Nodes are located by id in depth-first pre-order. Ids are expected to
// be unique; if stored data holds duplicates, only the first match is
// acted on.
package tree
