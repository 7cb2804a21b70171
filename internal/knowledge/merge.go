package knowledge

// Merge deduplicates a set. Entities merge by exact name: observations are
// an order-preserving union, truncated to cap keeping the most recent
// entries. Relations deduplicate by (from, to, relationType). First-seen
// order is preserved for both. Merge is idempotent: Merge(Merge(s)) equals
// Merge(s). A cap <= 0 disables truncation.
func Merge(set *Set, cap int) *Set {
	out := &Set{}

	entityIdx := make(map[string]int)
	for _, e := range set.Entities {
		i, seen := entityIdx[e.Name]
		if !seen {
			entityIdx[e.Name] = len(out.Entities)
			merged := e
			merged.Observations = truncate(dedup(e.Observations), cap)
			out.Entities = append(out.Entities, merged)
			continue
		}
		prev := &out.Entities[i]
		if prev.EntityType == "" {
			prev.EntityType = e.EntityType
		}
		prev.Observations = truncate(union(prev.Observations, e.Observations), cap)
	}

	relSeen := make(map[string]bool)
	for _, r := range set.Relations {
		k := r.Key()
		if relSeen[k] {
			continue
		}
		relSeen[k] = true
		out.Relations = append(out.Relations, r)
	}

	return out
}

// union appends the elements of b not already in a, preserving order.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func dedup(a []string) []string {
	return union(a, nil)
}

// truncate keeps the most recent n observations, preserving order.
func truncate(obs []string, n int) []string {
	if n <= 0 || len(obs) <= n {
		return obs
	}
	return obs[len(obs)-n:]
}

// Equal reports whether two sets have identical contents in identical order.
func Equal(a, b *Set) bool {
	if len(a.Entities) != len(b.Entities) || len(a.Relations) != len(b.Relations) {
		return false
	}
	for i := range a.Entities {
		x, y := a.Entities[i], b.Entities[i]
		if x.Name != y.Name || x.EntityType != y.EntityType || len(x.Observations) != len(y.Observations) {
			return false
		}
		for j := range x.Observations {
			if x.Observations[j] != y.Observations[j] {
				return false
			}
		}
	}
	for i := range a.Relations {
		if a.Relations[i].Key() != b.Relations[i].Key() {
			return false
		}
	}
	return true
}
