package history

// PruneConfig controls Engine.Prune's retention predicate. MaxCommands
// and MaxAgeMS are pointers so "unset" (no cap) is distinguishable from
// an explicit zero value (spec.md §4.5: "max_age_ms not set OR its age
// <= max_age_ms").
type PruneConfig struct {
	// MaxCommands, if non-nil, caps the retained global log to the most
	// recent N entries after the retention predicate below is applied.
	MaxCommands *int
	// MaxAgeMS, if non-nil, retains only commands whose age (NowMS -
	// command timestamp) is at most this many milliseconds, unless the
	// command is otherwise retained by KeepFromUsers/KeepAffecting.
	MaxAgeMS *int64
	// NowMS is the reference time age is measured against. Callers
	// supply their own clock reading; the engine tracks no time itself
	// (spec.md: the engine holds no timers).
	NowMS int64
	// KeepAffecting always retains commands whose Affects intersects
	// this set, regardless of age.
	KeepAffecting map[EntityID]struct{}
	// KeepFromUsers always retains commands authored by these users,
	// regardless of age.
	KeepFromUsers map[UserID]struct{}
}

// Prune rewrites the global log to the commands retained under cfg and
// returns how many were removed.
//
// Per-user stacks, the dependency graph, and the conflict log are not
// rewritten (spec.md §4.5, §9 open question 3): a stack may afterward
// reference commands absent from GlobalHistory.
func (e *Engine) Prune(cfg PruneConfig) int {
	before := len(e.globalLog)

	retained := make([]Command, 0, before)
	for _, c := range e.globalLog {
		if retain(c, cfg) {
			retained = append(retained, c)
		}
	}

	if cfg.MaxCommands != nil && len(retained) > *cfg.MaxCommands {
		retained = retained[len(retained)-*cfg.MaxCommands:]
	}

	keptIDs := make(map[string]struct{}, len(retained))
	for _, c := range retained {
		keptIDs[c.ID()] = struct{}{}
	}
	for _, c := range e.globalLog {
		if _, kept := keptIDs[c.ID()]; !kept {
			delete(e.commandByID, c.ID())
		}
	}

	e.globalLog = retained
	return before - len(retained)
}

func retain(c Command, cfg PruneConfig) bool {
	if _, ok := cfg.KeepFromUsers[c.UserID()]; ok {
		return true
	}
	if len(cfg.KeepAffecting) > 0 {
		for _, entity := range c.Affects() {
			if _, ok := cfg.KeepAffecting[entity]; ok {
				return true
			}
		}
	}
	if cfg.MaxAgeMS == nil {
		return true
	}
	age := cfg.NowMS - c.Timestamp()
	return age <= *cfg.MaxAgeMS
}
