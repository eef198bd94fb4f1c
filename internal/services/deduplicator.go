package services

// Deduplicator remembers posting identifiers already written to the store
// and those seen earlier in the current run. It is not safe for concurrent use.
type Deduplicator struct {
	seen map[string]struct{}
}

func NewDeduplicator(knownIDs []string) *Deduplicator {
	seen := make(map[string]struct{}, len(knownIDs))
	for _, id := range knownIDs {
		if id != "" {
			seen[id] = struct{}{}
		}
	}
	return &Deduplicator{seen: seen}
}

func (d *Deduplicator) HasSeen(id string) bool {
	if id == "" {
		return false
	}
	_, ok := d.seen[id]
	return ok
}

func (d *Deduplicator) RecordSeen(id string) {
	if id == "" {
		return
	}
	d.seen[id] = struct{}{}
}

func (d *Deduplicator) Len() int {
	return len(d.seen)
}
