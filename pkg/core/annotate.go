package core

import (
	"sort"
	"strings"
)

// InputRow holds the two fields of a table row that annotation reads.
type InputRow struct {
	Accessions []string
	Window     string
}

// Annotation is the known-site evidence found for one row.
type Annotation struct {
	MatchedWindows []string // reference windows, verbatim, first match first
	Present        bool
	Origins        []string // sorted, deduplicated evidence tags
}

// KnownSite returns the category value for the row: ["+"] when present.
func (a Annotation) KnownSite() []string {
	if !a.Present {
		return []string{}
	}
	return []string{"+"}
}

// WindowText returns the matched windows joined with ';'.
func (a Annotation) WindowText() string {
	return strings.Join(a.MatchedWindows, ";")
}

// ParseAccessions splits a semicolon-delimited accession field. Split order is
// kept and duplicates are not removed. An empty field yields no accessions.
func ParseAccessions(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(field, ";")
}

// rowWindows upper-cases and normalizes a row's window field and splits it
// into its individual windows, dropping empty ones.
func rowWindows(field string) []string {
	var wins []string
	for _, w := range strings.Split(NormalizeWindow(strings.ToUpper(field)), ";") {
		if w != "" {
			wins = append(wins, w)
		}
	}
	return wins
}

// Annotate looks up every reference site under the row's accessions and
// collects those whose core window matches one of the row's windows.
func Annotate(row InputRow, idx *ReferenceIndex) Annotation {
	result := Annotation{MatchedWindows: []string{}, Origins: []string{}}

	wins := rowWindows(row.Window)
	if len(wins) == 0 || len(row.Accessions) == 0 {
		return result
	}

	seen := make(map[string]bool)
	origins := make(map[string]bool)
	for _, acc := range row.Accessions {
		for _, i := range idx.Lookup(acc) {
			rec := idx.Record(i)
			ref, ok := rec.CoreWindow()
			if !ok || !anyMatch(wins, ref) {
				continue
			}
			if !seen[rec.Window] {
				seen[rec.Window] = true
				result.MatchedWindows = append(result.MatchedWindows, rec.Window)
			}
			for _, tag := range rec.Origins() {
				origins[tag] = true
			}
		}
	}

	result.Present = len(result.MatchedWindows) > 0
	for tag := range origins {
		result.Origins = append(result.Origins, tag)
	}
	sort.Strings(result.Origins)
	return result
}

func anyMatch(wins []string, ref string) bool {
	for _, w := range wins {
		if WindowsMatch(w, ref) {
			return true
		}
	}
	return false
}
