package catalog

// UniqueIDs drops repeated ids, keeping first occurrences in order.
func UniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ReconcileIDs computes the changes that turn the current association set
// into the desired one: ids to add and ids to remove. Ids in both sets are
// retained untouched.
func ReconcileIDs(current, desired []uint) (add, remove []uint) {
	want := make(map[uint]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}
	have := make(map[uint]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}

	for _, id := range UniqueIDs(desired) {
		if _, ok := have[id]; !ok {
			add = append(add, id)
		}
	}
	for _, id := range UniqueIDs(current) {
		if _, ok := want[id]; !ok {
			remove = append(remove, id)
		}
	}
	return add, remove
}
