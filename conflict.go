package history

// Resolution tags how a human (or caller policy) decided to settle a
// conflict. The engine only stores this tag; it never acts on it.
type Resolution string

const (
	ResolutionNone           Resolution = ""
	ResolutionLastWriteWins  Resolution = "last_write_wins"
	ResolutionFirstWriteWins Resolution = "first_write_wins"
	ResolutionMerge          Resolution = "merge"
	ResolutionManual         Resolution = "manual"
)

// Conflict records that two or more different users submitted commands
// touching the same entities within the conflict window.
type Conflict struct {
	Commands         []Command
	AffectedEntities []EntityID
	Resolution       Resolution
}

// ConflictRef identifies a Conflict for ResolveConflict by the ids of
// its commands rather than by its slice index.
type ConflictRef struct {
	commandIDs string // concatenation used as a stable key; see conflictKey
}

// conflictLog is an append-only list of conflicts, plus a lookup index
// from stable key to slice position for ResolveConflict.
type conflictLog struct {
	entries []Conflict
	index   map[string]int
}

func newConflictLog() *conflictLog {
	return &conflictLog{index: make(map[string]int)}
}

// detect examines the last window entries of log (excluding cmd itself)
// for commands by a different user than cmd that share at least one
// affected entity, and if any are found records one conflict entry
// covering all of them plus cmd.
func (cl *conflictLog) detect(cmd Command, log []Command, window int) {
	tail := tailBefore(log, window)
	affects := newEntitySet(cmd.Affects())

	var matched []Command
	entitySeen := make(map[EntityID]struct{})
	var entities []EntityID
	for _, other := range tail {
		if other.ID() == cmd.ID() {
			continue
		}
		if other.UserID() == cmd.UserID() {
			continue
		}
		overlap := affects.intersection(other.Affects())
		if len(overlap) == 0 {
			continue
		}
		matched = append(matched, other)
		for _, e := range overlap {
			if _, ok := entitySeen[e]; !ok {
				entitySeen[e] = struct{}{}
				entities = append(entities, e)
			}
		}
	}

	if len(matched) == 0 {
		return
	}

	all := append(matched, cmd)
	conflict := Conflict{
		Commands:         all,
		AffectedEntities: entities,
		Resolution:       ResolutionNone,
	}
	key := conflictKey(all)
	cl.index[key] = len(cl.entries)
	cl.entries = append(cl.entries, conflict)
}

// tailBefore returns the last n entries of log, excluding the final
// entry if it is the command currently being submitted (the caller
// appends cmd to the global log before calling detect, so the tail
// naturally includes cmd unless handled here). Given the manager always
// calls detect immediately after appending cmd, the last element of log
// is cmd itself; tailBefore excludes it from the window count so the
// window measures prior commands only.
func tailBefore(log []Command, n int) []Command {
	if len(log) == 0 {
		return nil
	}
	body := log[:len(log)-1] // drop the just-appended command
	if n <= 0 || n >= len(body) {
		return body
	}
	return body[len(body)-n:]
}

func conflictKey(cmds []Command) string {
	key := ""
	for _, c := range cmds {
		key += c.ID() + "|"
	}
	return key
}

func (cl *conflictLog) list() []Conflict {
	out := make([]Conflict, len(cl.entries))
	copy(out, cl.entries)
	return out
}

// resolve sets the resolution tag on the conflict matching ref.
// Returns false if ref does not match a known conflict.
func (cl *conflictLog) resolve(ref ConflictRef, resolution Resolution) bool {
	idx, ok := cl.index[ref.commandIDs]
	if !ok {
		return false
	}
	cl.entries[idx].Resolution = resolution
	return true
}

// refFor returns the stable ConflictRef for a conflict entry, for use
// by callers who obtained the Conflict from Conflicts() and want to
// resolve it.
func refFor(c Conflict) ConflictRef {
	return ConflictRef{commandIDs: conflictKey(c.Commands)}
}
