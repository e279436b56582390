package core

// Summary holds dataset statistics reported by the summarize command.
type Summary struct {
	Records      int
	Accessions   int
	LTP          int // records with low-throughput literature evidence
	HTP          int
	CST          int
	NoEvidence   int
	ShortWindows int // windows too short to compare
}

// Summarize computes statistics over an indexed dataset.
func Summarize(idx *ReferenceIndex) Summary {
	s := Summary{
		Records:    len(idx.records),
		Accessions: idx.Len(),
	}
	for _, rec := range idx.records {
		if rec.LTP {
			s.LTP++
		}
		if rec.HTP {
			s.HTP++
		}
		if rec.CST {
			s.CST++
		}
		if !rec.LTP && !rec.HTP && !rec.CST {
			s.NoEvidence++
		}
		if _, ok := rec.CoreWindow(); !ok {
			s.ShortWindows++
		}
	}
	return s
}
