package history

// EntityID identifies an opaque piece of application state that a
// Command reads or writes. The engine never interprets these beyond
// set membership and intersection.
type EntityID = string

// UserID identifies the submitter of a command. Opaque to the engine.
type UserID = string

// Command is an immutable description of one state transition and its
// reverse. Implementations must keep whatever data Revert needs (e.g.
// the pre-image of a mutated field) inside the command itself, never in
// the state: Revert may run against a state that has since been
// mutated by later commands and undone back down to the matching point.
//
// Neither Apply nor Revert may mutate the state argument it receives;
// both must return a new value.
type Command interface {
	// ID is a globally unique identifier, assigned at construction.
	ID() string
	// Kind names the command family. Used only for statistics and for
	// serialization dispatch; the engine never branches on it.
	Kind() string
	// Timestamp is milliseconds since epoch, monotonic within a single
	// submitter on a single host.
	Timestamp() int64
	// UserID identifies the submitter.
	UserID() UserID
	// Affects lists the entities this command reads or writes.
	Affects() []EntityID
	// Metadata is an opaque payload the command needs to reconstruct
	// itself after deserialization. The engine never interprets it.
	Metadata() []byte

	// Apply produces the state that results from executing this
	// command against state.
	Apply(state any) (any, error)
	// Revert produces the state that preceded this command's effect.
	Revert(state any) (any, error)
	// CanRevert reports whether this command's effect is still present
	// in state and can be undone.
	CanRevert(state any) bool
}

// entitySet is a small unordered set of entity ids, used to test
// Affects() overlap between commands.
type entitySet map[EntityID]struct{}

func newEntitySet(ids []EntityID) entitySet {
	s := make(entitySet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// intersects reports whether s shares at least one member with ids.
func (s entitySet) intersects(ids []EntityID) bool {
	for _, id := range ids {
		if _, ok := s[id]; ok {
			return true
		}
	}
	return false
}

// intersection returns the members ids shares with s, in the order
// they appear in ids, without duplicates.
func (s entitySet) intersection(ids []EntityID) []EntityID {
	seen := make(map[EntityID]struct{}, len(ids))
	var out []EntityID
	for _, id := range ids {
		if _, ok := s[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
