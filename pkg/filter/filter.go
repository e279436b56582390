// Package filter provides row filtering of annotated matrices
package filter

import (
	"fmt"
	"strings"

	"github.com/wengx006/perseus-plugins/pkg/core"
	"github.com/wengx006/perseus-plugins/pkg/table"
)

// Config holds filtering configuration
type Config struct {
	KnownOnly bool     // Keep only rows with a known site
	Origins   []string // Keep only rows with at least one of these origins (nil = all)
}

// ParseOrigins parses a comma-separated origin list such as "LTP,htp".
func ParseOrigins(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var origins []string
	for _, part := range strings.Split(s, ",") {
		tag := strings.ToUpper(strings.TrimSpace(part))
		switch tag {
		case core.OriginLTP, core.OriginHTP, core.OriginCST:
			origins = append(origins, tag)
		default:
			return nil, fmt.Errorf("unknown origin %q, must be one of LTP, HTP, CST", part)
		}
	}
	return origins, nil
}

// Active reports whether any filter is configured.
func (c *Config) Active() bool {
	return c.KnownOnly || len(c.Origins) > 0
}

// Apply removes rows of t whose annotation does not pass the filters and
// returns the annotations of the rows kept. anns must hold one annotation per
// row of t.
func (c *Config) Apply(t *table.Table, anns []core.Annotation) ([]core.Annotation, error) {
	if len(anns) != len(t.Rows) {
		return nil, fmt.Errorf("have %d annotations for %d rows", len(anns), len(t.Rows))
	}
	if !c.Active() {
		return anns, nil
	}

	var rows [][]string
	var kept []core.Annotation
	for i, a := range anns {
		if c.keep(a) {
			rows = append(rows, t.Rows[i])
			kept = append(kept, a)
		}
	}

	t.Rows = rows
	return kept, nil
}

func (c *Config) keep(a core.Annotation) bool {
	if c.KnownOnly && !a.Present {
		return false
	}
	if len(c.Origins) == 0 {
		return true
	}
	return matchesOrigin(a.Origins, c.Origins)
}

// matchesOrigin checks if any annotation origin is in the allowed set
func matchesOrigin(origins, allowed []string) bool {
	for _, o := range origins {
		for _, want := range allowed {
			if o == want {
				return true
			}
		}
	}
	return false
}
