package history

// ReplayOptions filters which commands a Replay call actually applies.
type ReplayOptions struct {
	// UserID, if non-empty, skips commands whose UserID differs.
	UserID UserID
	// Skip names specific command ids to skip entirely.
	Skip map[string]struct{}
	// StartFrom, if non-empty, makes replay active after the command
	// with this id: that command and every command before it in cmds
	// are skipped.
	StartFrom string
	// StopAt, if non-empty, halts replay at the command with this id;
	// that command is not applied.
	StopAt string
}

// Replay is a pure function of (initial, cmds, opts): it threads state
// through cmds in order, applying each that survives the filters, and
// never touches an Engine's internal state (spec.md §4.7).
func Replay(initial any, cmds []Command, opts ReplayOptions) (any, error) {
	state := initial
	active := opts.StartFrom == ""

	for _, cmd := range cmds {
		if cmd.ID() == opts.StopAt && opts.StopAt != "" {
			break
		}
		if !active {
			if cmd.ID() == opts.StartFrom {
				active = true
			}
			continue
		}
		if opts.UserID != "" && cmd.UserID() != opts.UserID {
			continue
		}
		if _, skip := opts.Skip[cmd.ID()]; skip {
			continue
		}

		next, err := cmd.Apply(state)
		if err != nil {
			return state, err
		}
		state = next
	}

	return state, nil
}

// Replay is the Engine-bound convenience form of the package-level
// Replay, for call-site symmetry with the rest of the public API
// (spec.md §6 lists Engine.replay alongside the other entry points).
// It does not read or modify any Engine state.
func (e *Engine) Replay(initial any, cmds []Command, opts ReplayOptions) (any, error) {
	return Replay(initial, cmds, opts)
}
