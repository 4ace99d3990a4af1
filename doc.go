// Package history implements a multi-user undo/redo engine built on the
// Command pattern. It tracks per-user stacks, a global chronological log,
// inter-command dependencies, cross-user conflicts, speculative branches,
// filtered replay, and bounded pruning over an opaque application state.
//
// The engine never reads or mutates the state it is handed; state
// transitions are entirely the responsibility of the Command
// implementations supplied by the caller.
package history
