// Package extract pulls structured signals out of free text. Every function
// is total: ambiguous or missing input yields a neutral default, never an
// error.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Ceiling is an upper price bound. The zero value is unbounded.
type Ceiling struct {
	Max     float64 `json:"max"`
	Bounded bool    `json:"bounded"`
}

// NoCeiling admits every price.
var NoCeiling = Ceiling{}

// Under returns a bounded ceiling.
func Under(max float64) Ceiling {
	return Ceiling{Max: max, Bounded: true}
}

// Allows reports whether price is within the ceiling (inclusive).
func (c Ceiling) Allows(price float64) bool {
	return !c.Bounded || price <= c.Max
}

var priceCeilingRe = regexp.MustCompile(
	`(?i)\b(?:under|below|less\s+than|cheaper\s+than|at\s+most|no\s+more\s+than|up\s+to)\s*(?:[$€£₹]\s*)?(\d[\d,]*(?:\.\d+)?)`,
)

// PriceCeiling finds phrases like "under $120" or "less than 80".
// The first phrase wins.
func PriceCeiling(text string) Ceiling {
	m := priceCeilingRe.FindStringSubmatch(text)
	if m == nil {
		return NoCeiling
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || v < 0 {
		return NoCeiling
	}
	return Under(v)
}
