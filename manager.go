package history

import (
	"sort"

	"github.com/go-mizu/history/internal/clock"
	"github.com/go-mizu/history/pkg/id"
)

// Engine coordinates per-user stacks, the global chronological log, the
// dependency graph, the conflict log, and per-user redo buffers. It is
// the public API described in spec.md §4.3.
//
// Engine assumes serial use: at most one of Submit, Undo, Redo, Prune,
// Snapshot, or Replay is in progress at a time. Concurrent callers must
// wrap an Engine in their own mutual exclusion (spec.md §5).
type Engine struct {
	conflictWindow int

	clock clock.Source
	idGen id.Generator

	globalLog   []Command
	commandByID map[string]Command

	stacks      map[UserID]*UndoStack
	redoBuffers map[UserID][]Command

	graph     *dependencyGraph
	conflicts *conflictLog
}

// NewEngine returns an empty Engine ready to accept submissions.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		conflictWindow: defaultConflictWindow,
		clock:          clock.System,
		idGen:          id.New,
		commandByID:    make(map[string]Command),
		stacks:         make(map[UserID]*UndoStack),
		redoBuffers:    make(map[UserID][]Command),
		graph:          newDependencyGraph(),
		conflicts:      newConflictLog(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the current time in milliseconds since epoch, from
// whatever clock Engine was configured with (see WithClock). Callers
// building new commands use this so a command's Timestamp stays
// consistent with the engine's notion of "now", including in tests
// that freeze chronology.
func (e *Engine) Now() int64 { return e.clock() }

// NewID returns a new command id from whatever generator Engine was
// configured with (see WithIDGenerator). Callers building new commands
// use this instead of importing pkg/id directly.
func (e *Engine) NewID() string { return e.idGen() }

// stackFor returns user's stack, creating it lazily on first use.
func (e *Engine) stackFor(user UserID) *UndoStack {
	s, ok := e.stacks[user]
	if !ok {
		s = newUndoStack(user)
		e.stacks[user] = s
	}
	return s
}

// Submit appends cmd to the global log, pushes it onto its submitter's
// stack, clears that user's redo buffer, updates dependency edges, and
// scans for conflicts. Submit never touches state: the caller applies
// cmd separately.
func (e *Engine) Submit(cmd Command) error {
	if _, dup := e.commandByID[cmd.ID()]; dup {
		return ErrDuplicateCommandID
	}

	e.globalLog = append(e.globalLog, cmd)
	e.commandByID[cmd.ID()] = cmd

	stack := e.stackFor(cmd.UserID())
	stack.Push(cmd)
	e.redoBuffers[cmd.UserID()] = nil

	e.graph.add(cmd)
	e.conflicts.detect(cmd, e.globalLog, e.conflictWindow)
	return nil
}

// dependentsOf returns the commands that depend on id (per the
// dependency graph), sorted newest-first, for cascade undo.
func (e *Engine) dependentsOf(id string) []Command {
	ids := e.graph.dependentIDs(id)
	if len(ids) == 0 {
		return nil
	}
	out := make([]Command, 0, len(ids))
	for _, depID := range ids {
		if c, ok := e.commandByID[depID]; ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp() > out[j].Timestamp()
	})
	return out
}

// Undo reverts the current user's top-of-stack command. Per spec.md
// §4.3 "Dependents policy", every later command whose Affects overlaps
// the target is cascaded first, newest to oldest, against a working
// copy of state; if any step in that chain (or the target itself)
// refuses to revert, the whole call fails with ErrValidationFailed and
// the caller's original state is returned unchanged. Cascaded commands
// do not move any stack cursor and are not pushed onto any redo
// buffer — they remain exactly where they were.
func (e *Engine) Undo(user UserID, state any) (any, error) {
	stack, ok := e.stacks[user]
	if !ok || !stack.CanUndo() {
		return state, nil
	}

	target := stack.Current()
	working := state

	for _, dep := range e.dependentsOf(target.ID()) {
		if !dep.CanRevert(working) {
			return state, validationFailed(dep.ID())
		}
		reverted, err := dep.Revert(working)
		if err != nil {
			return state, err
		}
		working = reverted
	}

	if !target.CanRevert(working) {
		return state, validationFailed(target.ID())
	}
	newState, err := target.Revert(working)
	if err != nil {
		return state, err
	}

	stack.MoveBack()
	e.redoBuffers[user] = append(e.redoBuffers[user], target)
	return newState, nil
}

// Redo re-applies the most recently undone command for user, if any.
func (e *Engine) Redo(user UserID, state any) (any, error) {
	buf := e.redoBuffers[user]
	if len(buf) == 0 {
		return state, nil
	}

	cmd := buf[len(buf)-1]
	newState, err := cmd.Apply(state)
	if err != nil {
		return state, err
	}

	e.redoBuffers[user] = buf[:len(buf)-1]
	if stack, ok := e.stacks[user]; ok {
		stack.MoveForward()
	}
	return newState, nil
}

// UndoCommand selectively reverts cmd regardless of any stack's cursor
// position. It does not move any cursor or touch any redo buffer;
// it is intended for engine-internal cascades and for callers who need
// to revert an arbitrary past command directly.
func (e *Engine) UndoCommand(cmd Command, state any) (any, error) {
	if !cmd.CanRevert(state) {
		return state, validationFailed(cmd.ID())
	}
	return cmd.Revert(state)
}

// CanUndo reports whether user has a command to undo.
func (e *Engine) CanUndo(user UserID) bool {
	s, ok := e.stacks[user]
	return ok && s.CanUndo()
}

// CanRedo reports whether user has a command to redo.
func (e *Engine) CanRedo(user UserID) bool {
	return len(e.redoBuffers[user]) > 0
}

// History returns every command currently held on user's stack, in
// submission order, regardless of cursor position. Commands discarded
// by a later push past the cursor or by RestoreBranch are not included.
func (e *Engine) History(user UserID) []Command {
	s, ok := e.stacks[user]
	if !ok {
		return nil
	}
	return s.All()
}

// GlobalHistory returns every command in the global log, in submission
// order (not necessarily timestamp order across users).
func (e *Engine) GlobalHistory() []Command {
	out := make([]Command, len(e.globalLog))
	copy(out, e.globalLog)
	return out
}

// Undoable returns user's active prefix: the commands currently in
// effect from that user's perspective.
func (e *Engine) Undoable(user UserID) []Command {
	s, ok := e.stacks[user]
	if !ok {
		return nil
	}
	return s.ActivePrefix()
}

// Redoable returns the contents of user's redo buffer, LIFO (the next
// command Redo would apply is first).
func (e *Engine) Redoable(user UserID) []Command {
	buf := e.redoBuffers[user]
	out := make([]Command, len(buf))
	for i, c := range buf {
		out[len(buf)-1-i] = c
	}
	return out
}

// Clear drops all engine state: the global log, every per-user stack
// and redo buffer, the dependency graph, and the conflict log.
func (e *Engine) Clear() {
	e.globalLog = nil
	e.commandByID = make(map[string]Command)
	e.stacks = make(map[UserID]*UndoStack)
	e.redoBuffers = make(map[UserID][]Command)
	e.graph = newDependencyGraph()
	e.conflicts = newConflictLog()
}

// ClearUser removes user's stack and redo buffer, and removes every
// command user authored from the global log and from commandByID. It
// does not remove edges *to* those commands held by other users'
// dependency records (spec.md §9 open question 2): the graph is
// lookup-tolerant, so those edges simply become dangling.
func (e *Engine) ClearUser(user UserID) {
	removed := make(map[string]struct{})
	filtered := e.globalLog[:0:0]
	for _, c := range e.globalLog {
		if c.UserID() == user {
			removed[c.ID()] = struct{}{}
			continue
		}
		filtered = append(filtered, c)
	}
	e.globalLog = filtered

	for id := range removed {
		delete(e.commandByID, id)
		e.graph.removeCommand(id)
	}

	delete(e.stacks, user)
	delete(e.redoBuffers, user)
}

// CreateBranch snapshots user's active prefix under name.
func (e *Engine) CreateBranch(user UserID, name string) bool {
	s := e.stackFor(user)
	s.CreateBranch(name)
	return true
}

// RestoreBranch replaces user's stack with the named branch's
// snapshot. Returns false if the branch is unknown. The global log,
// other users' stacks, dependency edges, and conflict records are not
// rewound; callers who need state coherence must revert state
// themselves (spec.md §4.4).
func (e *Engine) RestoreBranch(user UserID, name string) bool {
	s, ok := e.stacks[user]
	if !ok {
		return false
	}
	return s.RestoreBranch(name)
}

// DeleteBranch removes the named branch from user's stack. Returns
// false if it was unknown.
func (e *Engine) DeleteBranch(user UserID, name string) bool {
	s, ok := e.stacks[user]
	if !ok {
		return false
	}
	return s.DeleteBranch(name)
}

// Conflicts returns a read-only view of every recorded conflict.
func (e *Engine) Conflicts() []Conflict {
	return e.conflicts.list()
}

// ResolveConflict sets the resolution tag on the conflict referenced by
// ref. It does not alter any state. Returns false if ref does not
// match a known conflict.
func (e *Engine) ResolveConflict(ref ConflictRef, resolution Resolution) bool {
	return e.conflicts.resolve(ref, resolution)
}

// ConflictRefFor returns the stable reference for a Conflict obtained
// from Conflicts(), for use with ResolveConflict.
func ConflictRefFor(c Conflict) ConflictRef {
	return refFor(c)
}
