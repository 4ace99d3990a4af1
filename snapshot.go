package history

// snapshotVersion is the only version this engine produces or accepts.
// Older or unrecognized versions fail LoadSnapshot with
// ErrUnsupportedVersion (spec.md §6).
const snapshotVersion = "1.0.0"

// SerializedCommand is the portable form of a Command. Metadata is
// carried as opaque bytes; the engine never interprets it.
type SerializedCommand struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Timestamp int64      `json:"timestamp"`
	UserID    UserID     `json:"user_id"`
	Affects   []EntityID `json:"affects"`
	Metadata  []byte     `json:"metadata"`
}

// Snapshot is a version-tagged, portable record of everything the
// engine persists across a save/load cycle: the global log (serialized)
// and each user's stack cursor. Redo buffers, branches, dependency
// edges, and conflict records are intentionally not persisted — they
// are either rederivable (edges, conflicts) or meant to be volatile
// (redo buffers, branches), per spec.md §3 "Snapshot".
type Snapshot struct {
	Version       string              `json:"version"`
	TimestampMS   int64               `json:"timestamp"`
	Commands      []SerializedCommand `json:"commands"`
	UserPositions map[UserID]int      `json:"user_positions"`
}

// CommandFactory reconstructs a concrete Command from its serialized
// form. The engine does not know concrete command types, so callers
// must supply one (spec.md §4.6).
type CommandFactory func(sc SerializedCommand) (Command, error)

// Snapshot serializes the engine's persistable state: the global log
// and every known user's stack cursor.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Version:       snapshotVersion,
		Commands:      make([]SerializedCommand, len(e.globalLog)),
		UserPositions: make(map[UserID]int, len(e.stacks)),
	}
	if len(e.globalLog) > 0 {
		snap.TimestampMS = e.globalLog[len(e.globalLog)-1].Timestamp()
	}
	for i, c := range e.globalLog {
		snap.Commands[i] = serialize(c)
	}
	for user, stack := range e.stacks {
		snap.UserPositions[user] = stack.position
	}
	return snap
}

func serialize(c Command) SerializedCommand {
	affects := make([]EntityID, len(c.Affects()))
	copy(affects, c.Affects())
	return SerializedCommand{
		ID:        c.ID(),
		Kind:      c.Kind(),
		Timestamp: c.Timestamp(),
		UserID:    c.UserID(),
		Affects:   affects,
		Metadata:  c.Metadata(),
	}
}

// LoadSnapshot replaces the engine's state with what snap describes,
// reconstructing each command via factory. The dependency graph and
// conflict log are rebuilt by replaying Submit's bookkeeping for every
// restored command, in log order, matching what a live session would
// have produced. Redo buffers and branches start empty, as they are
// not part of a snapshot.
func (e *Engine) LoadSnapshot(snap Snapshot, factory CommandFactory) error {
	if snap.Version != snapshotVersion {
		return ErrUnsupportedVersion
	}
	if snap.UserPositions == nil {
		return ErrMalformedSnapshot
	}

	e.Clear()

	for _, sc := range snap.Commands {
		if sc.ID == "" || sc.UserID == "" {
			return ErrMalformedSnapshot
		}
		cmd, err := factory(sc)
		if err != nil {
			return err
		}
		if cmd == nil {
			return ErrUnknownCommandKind
		}
		e.globalLog = append(e.globalLog, cmd)
		e.commandByID[cmd.ID()] = cmd
		e.graph.add(cmd)
		e.conflicts.detect(cmd, e.globalLog, e.conflictWindow)
		stack := e.stackFor(cmd.UserID())
		stack.commands = append(stack.commands, cmd)
	}

	for user, pos := range snap.UserPositions {
		stack := e.stackFor(user)
		if pos < -1 || pos >= len(stack.commands) {
			return ErrMalformedSnapshot
		}
		stack.position = pos
	}

	return nil
}
