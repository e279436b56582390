package core

// ReferenceIndex maps accessions to the positions of the records that carry
// them. It is immutable once built and safe for concurrent readers.
type ReferenceIndex struct {
	records []ReferenceRecord
	byAcc   map[string][]int
}

// BuildIndex indexes records by accession. Positions under each accession
// keep the order in which the records appear. Accessions are used verbatim.
func BuildIndex(records []ReferenceRecord) *ReferenceIndex {
	idx := &ReferenceIndex{
		records: records,
		byAcc:   make(map[string][]int),
	}
	for i, rec := range records {
		idx.byAcc[rec.Accession] = append(idx.byAcc[rec.Accession], i)
	}
	return idx
}

// Lookup returns the record positions indexed under acc, or nil.
func (idx *ReferenceIndex) Lookup(acc string) []int {
	return idx.byAcc[acc]
}

// Record returns the record at position i.
func (idx *ReferenceIndex) Record(i int) ReferenceRecord {
	return idx.records[i]
}

// Records returns the indexed records. Callers must not modify the slice.
func (idx *ReferenceIndex) Records() []ReferenceRecord {
	return idx.records
}

// Len returns the number of distinct accessions.
func (idx *ReferenceIndex) Len() int {
	return len(idx.byAcc)
}
