package history

import "fmt"

// fakeCommand is a minimal Command used across the engine's tests. It
// models a single key moving between two string "slots" inside a
// map[string]string state, which is enough to exercise apply/revert
// round trips without pulling in a concrete game domain.
type fakeCommand struct {
	id        string
	kind      string
	ts        int64
	user      UserID
	affects   []EntityID
	metadata  []byte
	key       string
	from, to  string
	revertOK  bool
	applyErr  error
	revertErr error
}

func newFakeCommand(id string, ts int64, user UserID, affects []EntityID) *fakeCommand {
	return &fakeCommand{
		id:       id,
		kind:     "move",
		ts:       ts,
		user:     user,
		affects:  affects,
		revertOK: true,
	}
}

func (c *fakeCommand) ID() string           { return c.id }
func (c *fakeCommand) Kind() string         { return c.kind }
func (c *fakeCommand) Timestamp() int64     { return c.ts }
func (c *fakeCommand) UserID() UserID       { return c.user }
func (c *fakeCommand) Affects() []EntityID  { return c.affects }
func (c *fakeCommand) Metadata() []byte     { return c.metadata }

func (c *fakeCommand) Apply(state any) (any, error) {
	if c.applyErr != nil {
		return state, c.applyErr
	}
	m := cloneState(state)
	m[c.key] = c.to
	return m, nil
}

func (c *fakeCommand) Revert(state any) (any, error) {
	if c.revertErr != nil {
		return state, c.revertErr
	}
	m := cloneState(state)
	m[c.key] = c.from
	return m, nil
}

func (c *fakeCommand) CanRevert(state any) bool {
	if !c.revertOK {
		return false
	}
	m, ok := state.(map[string]string)
	if !ok {
		return false
	}
	return m[c.key] == c.to
}

func cloneState(state any) map[string]string {
	src, _ := state.(map[string]string)
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// moveCommand builds a fakeCommand that moves key from "from" to "to".
func moveCommand(id string, ts int64, user UserID, key, from, to string) *fakeCommand {
	c := newFakeCommand(id, ts, user, []EntityID{key})
	c.key = key
	c.from = from
	c.to = to
	return c
}

func mustID(n int) string {
	return fmt.Sprintf("cmd-%04d", n)
}
