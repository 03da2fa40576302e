package state

// JoinStatus tells how far an id list resolved against its record table.
type JoinStatus int

const (
	// JoinUnknown: the id list itself is not loaded.
	JoinUnknown JoinStatus = iota
	// JoinPartial: some referenced records are missing.
	JoinPartial
	// JoinComplete: every id resolved.
	JoinComplete
)

func (s JoinStatus) String() string {
	switch s {
	case JoinPartial:
		return "partial"
	case JoinComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Join is the result of resolving an ordered id list into records. Items
// keeps id order and holds the stored pointers. Missing lists the ids that
// had no record.
type Join[T any] struct {
	Status  JoinStatus
	Items   []*T
	Missing []int64
}

// ByID returns the joined records keyed by id. ok is false unless the join
// is complete.
func (j Join[T]) ByID(id func(*T) int64) (map[int64]*T, bool) {
	if j.Status != JoinComplete {
		return nil, false
	}
	out := make(map[int64]*T, len(j.Items))
	for _, item := range j.Items {
		out[id(item)] = item
	}
	return out, true
}

func joinIDs[T any](ids []int64, table map[int64]*T) Join[T] {
	j := Join[T]{Status: JoinComplete, Items: make([]*T, 0, len(ids))}
	for _, id := range ids {
		rec, ok := table[id]
		if !ok {
			j.Missing = append(j.Missing, id)
			continue
		}
		j.Items = append(j.Items, rec)
	}
	if len(j.Missing) > 0 {
		j.Status = JoinPartial
	}
	return j
}

// SelectedSiteID returns the site chosen in the console, or 0.
func SelectedSiteID(s *State) int64 {
	if s == nil {
		return 0
	}
	return s.UI.SelectedSiteID
}
