package inventory

// Journal is a caller-owned collection of change records. Callers that want
// mutation records back construct one explicitly and pass it where needed;
// nothing in the package shares a journal by default.
type Journal struct {
	records []ChangeRecord
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Append adds a record to the journal.
func (j *Journal) Append(rec ChangeRecord) {
	j.records = append(j.records, rec)
}

// Records returns a copy of the recorded changes in append order.
func (j *Journal) Records() []ChangeRecord {
	out := make([]ChangeRecord, len(j.records))
	copy(out, j.records)
	return out
}

// Len returns the number of recorded changes.
func (j *Journal) Len() int {
	return len(j.records)
}
