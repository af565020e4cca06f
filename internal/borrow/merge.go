package borrow

// Merge reconciles a record returned by the backend into a local list.
// The element with a matching ID is replaced in place; order and the
// identity of every other element are preserved. An unknown ID is
// appended, which is how a fresh borrow enters the list.
func Merge(records []*Record, updated *Record) []*Record {
	if updated == nil {
		return records
	}
	for i, r := range records {
		if r.ID == updated.ID {
			records[i] = updated
			return records
		}
	}
	return append(records, updated)
}

// Active filters a list down to records still occupying a borrow slot.
// The input list is not modified.
func Active(records []*Record) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if r.Active() {
			out = append(out, r)
		}
	}
	return out
}
