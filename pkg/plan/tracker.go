package plan

import "sort"

// Tracker is an immutable set of completed workout ids. The zero value is an
// empty tracker.
type Tracker struct {
	ids map[string]struct{}
}

func NewTracker(ids ...string) Tracker {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return Tracker{ids: set}
}

func (t Tracker) Has(id string) bool {
	_, ok := t.ids[id]
	return ok
}

func (t Tracker) Len() int {
	return len(t.ids)
}

// MarkComplete returns a tracker that also contains id. The receiver is left
// untouched so earlier snapshots stay valid for JustCompleted.
func (t Tracker) MarkComplete(id string) Tracker {
	if id == "" || t.Has(id) {
		return t
	}

	next := make(map[string]struct{}, len(t.ids)+1)
	for existing := range t.ids {
		next[existing] = struct{}{}
	}
	next[id] = struct{}{}
	return Tracker{ids: next}
}

// IDs returns the members in sorted order.
func (t Tracker) IDs() []string {
	out := make([]string, 0, len(t.ids))
	for id := range t.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// JustCompleted lists ids present in cur but absent from prev, sorted.
func JustCompleted(prev, cur Tracker) []string {
	var out []string
	for id := range cur.ids {
		if !prev.Has(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
