package history

// Stats aggregates totals over the global log: counts by user and by
// command kind, the oldest/newest timestamps seen, and an estimated
// byte size (sum of each command's Metadata length, the byte length of
// each of its affected entity ids, and a fixed per-entry overhead),
// generalized from the teacher's
// OperationInfo{Description, Timestamp} peek (see DESIGN.md) into
// aggregate form.
type Stats struct {
	Total           int
	ByUser          map[UserID]int
	ByKind          map[string]int
	OldestTimestamp int64
	NewestTimestamp int64
	EstimatedBytes  int64
}

// perEntryOverhead approximates the fixed cost of id, kind, timestamp,
// user id, and affects-set bookkeeping per command, independent of its
// Metadata payload size.
const perEntryOverhead = 64

// Stats computes aggregate totals over the current global log.
func (e *Engine) Stats() Stats {
	s := Stats{
		ByUser: make(map[UserID]int),
		ByKind: make(map[string]int),
	}
	if len(e.globalLog) == 0 {
		return s
	}

	s.Total = len(e.globalLog)
	s.OldestTimestamp = e.globalLog[0].Timestamp()
	s.NewestTimestamp = e.globalLog[0].Timestamp()

	for _, c := range e.globalLog {
		s.ByUser[c.UserID()]++
		s.ByKind[c.Kind()]++

		if ts := c.Timestamp(); ts < s.OldestTimestamp {
			s.OldestTimestamp = ts
		} else if ts > s.NewestTimestamp {
			s.NewestTimestamp = ts
		}

		s.EstimatedBytes += int64(len(c.Metadata())) + perEntryOverhead
		for _, entity := range c.Affects() {
			s.EstimatedBytes += int64(len(entity))
		}
	}

	return s
}
