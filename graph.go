package history

// dependencyGraph tracks, for every command id, the set of predecessor
// ids (depends_on) and successor ids (dependents) whose Affects()
// overlap that command's. When c is added, an edge p -> c is recorded
// for every previously added p with p.Timestamp < c.Timestamp and
// affects(p) ∩ affects(c) != ∅. A command added later never becomes a
// predecessor of one added before it, even if its timestamp is older.
//
// Edges respect timestamp order (a predecessor is always strictly
// older), so the graph is a DAG by construction.
//
// entityIndex maps an entity id to every command seen so far that
// affects it, turning dependency scanning into
// O(|affects(c)|·k) instead of an O(|log|) scan of the whole history
// (spec.md §9 "Avoiding the O(|log|) submit cost").
type dependencyGraph struct {
	dependsOn   map[string]map[string]struct{}
	dependents  map[string]map[string]struct{}
	entityIndex map[EntityID][]Command
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{
		dependsOn:   make(map[string]map[string]struct{}),
		dependents:  make(map[string]map[string]struct{}),
		entityIndex: make(map[EntityID][]Command),
	}
}

// add records cmd's edges against every prior, strictly-older command
// indexed under cmd's affected entities, then indexes cmd itself for
// future lookups.
func (g *dependencyGraph) add(cmd Command) {
	id := cmd.ID()
	seen := make(map[string]struct{})
	for _, entity := range cmd.Affects() {
		for _, prior := range g.entityIndex[entity] {
			if prior.ID() == id {
				continue
			}
			if prior.Timestamp() >= cmd.Timestamp() {
				continue
			}
			if _, dup := seen[prior.ID()]; dup {
				continue
			}
			seen[prior.ID()] = struct{}{}
			g.link(prior.ID(), id)
		}
	}
	for _, entity := range cmd.Affects() {
		g.entityIndex[entity] = append(g.entityIndex[entity], cmd)
	}
	if g.dependsOn[id] == nil {
		g.dependsOn[id] = make(map[string]struct{})
	}
	if g.dependents[id] == nil {
		g.dependents[id] = make(map[string]struct{})
	}
}

// link records a directed edge from -> to (from is the older command).
func (g *dependencyGraph) link(from, to string) {
	if g.dependents[from] == nil {
		g.dependents[from] = make(map[string]struct{})
	}
	g.dependents[from][to] = struct{}{}
	if g.dependsOn[to] == nil {
		g.dependsOn[to] = make(map[string]struct{})
	}
	g.dependsOn[to][from] = struct{}{}
}

// dependsOnIDs returns the ids the given command id depends on. Lookup
// is tolerant of unknown ids (returns nil), per spec.md §9 open
// question 2 ("make edges lookup-tolerant" rather than sweeping
// dangling ids on ClearUser).
func (g *dependencyGraph) dependsOnIDs(id string) []string {
	return setKeys(g.dependsOn[id])
}

// dependentIDs returns the ids that depend on the given command id.
func (g *dependencyGraph) dependentIDs(id string) []string {
	return setKeys(g.dependents[id])
}

func setKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// removeCommand drops id's own edge entries and its entries in the
// entity index. Edges held by other commands that still point at id
// are left dangling intentionally (lookup-tolerant, see spec.md §9
// open question 2); they simply never resolve to a live command again.
func (g *dependencyGraph) removeCommand(id string) {
	delete(g.dependsOn, id)
	delete(g.dependents, id)
	for entity, cmds := range g.entityIndex {
		filtered := cmds[:0:0]
		for _, existing := range cmds {
			if existing.ID() != id {
				filtered = append(filtered, existing)
			}
		}
		g.entityIndex[entity] = filtered
	}
}
