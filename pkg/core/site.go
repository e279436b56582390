// Package core provides the reference site model, sequence window matching
// and row annotation logic used by knownsites.
package core

import "strings"

// Evidence source tags, in sorted order.
const (
	OriginCST = "CST" // Cell Signaling Technology curated mass-spec
	OriginHTP = "HTP" // high-throughput (MS) literature
	OriginLTP = "LTP" // low-throughput literature
)

// ReferenceRecord is one site from a PhosphoSitePlus site dataset.
type ReferenceRecord struct {
	Accession string // protein accession (ACC_ID)
	Window    string // SITE_+/-7_AA, verbatim
	LTP       bool   // LT_LIT non-empty
	HTP       bool   // MS_LIT non-empty
	CST       bool   // MS_CST non-empty
}

// Origins returns the evidence tags carried by the record in sorted order.
func (r ReferenceRecord) Origins() []string {
	var tags []string
	if r.CST {
		tags = append(tags, OriginCST)
	}
	if r.HTP {
		tags = append(tags, OriginHTP)
	}
	if r.LTP {
		tags = append(tags, OriginLTP)
	}
	return tags
}

// CoreWindow returns the reference window with its flanking residues
// removed, upper-cased and normalized. ok is false when fewer than three
// characters are present, leaving nothing to compare.
func (r ReferenceRecord) CoreWindow() (string, bool) {
	if len(r.Window) < 3 {
		return "", false
	}
	return NormalizeWindow(strings.ToUpper(r.Window[1 : len(r.Window)-1])), true
}

// NormalizeWindow replaces every uppercase L with I. Leucine and isoleucine
// have the same mass and are not distinguished by the evidence sources.
// Lowercase characters are left untouched.
func NormalizeWindow(window string) string {
	return strings.ReplaceAll(window, "L", "I")
}

// WindowsMatch reports whether two normalized sequence windows describe the
// same site. Windows of equal length must be identical. Otherwise the shorter
// window must equal the centre of the longer one.
//
// A comparison whose centred slice would be empty or out of range is a
// non-match, so an empty window never matches a non-empty one.
func WindowsMatch(a, b string) bool {
	if len(a) == len(b) {
		return a == b
	}
	longer, shorter := a, b
	if len(b) > len(a) {
		longer, shorter = b, a
	}
	return centerEquals(longer, shorter)
}

func centerEquals(longer, shorter string) bool {
	offset := len(longer)/2 - len(shorter)/2
	n := len(longer) - 2*offset
	if offset < 0 || n <= 0 || offset+n > len(longer) {
		return false
	}
	return longer[offset:offset+n] == shorter
}
