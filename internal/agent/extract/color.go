package extract

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	// minFuzzyTokenLen keeps everyday words one edit away from a color
	// ("dream", "while", "alive") exact-only.
	minFuzzyTokenLen = 6
	// fuzzyCutoff is the minimum similarity, 1 - distance/len, of a fuzzy hit.
	fuzzyCutoff = 0.8
)

// byLength lists palette entries longest name first so "navy blue" wins over "navy".
var byLength = func() []paletteColor {
	out := slices.Clone(palette)
	slices.SortStableFunc(out, func(a, b paletteColor) int {
		return cmp.Compare(len(b.Name), len(a.Name))
	})
	return out
}()

// Color detects a color mentioned in text.
//
// The text is first matched against the palette, exactly on word boundaries
// and then approximately per token. When catalogColors is non-nil the palette
// hit is resolved to one of the catalog's own colors (exact, approximate, then
// by color family) and only that catalog spelling is returned. An empty
// result means no color was detected.
func Color(text string, catalogColors []string) string {
	hit, ok := matchPalette(normalize(text))
	if !ok {
		return ""
	}
	if catalogColors == nil {
		return hit.Name
	}
	return resolveCatalogColor(hit, catalogColors)
}

func matchPalette(norm string) (paletteColor, bool) {
	if norm == "" {
		return paletteColor{}, false
	}
	padded := " " + norm + " "
	for _, pc := range byLength {
		if strings.Contains(padded, " "+pc.Name+" ") {
			return pc, true
		}
	}

	var (
		best    paletteColor
		bestSim float64
	)
	for _, tok := range strings.Fields(norm) {
		if utf8.RuneCountInString(tok) < minFuzzyTokenLen {
			continue
		}
		for _, pc := range palette {
			if strings.Contains(pc.Name, " ") {
				continue
			}
			if sim, ok := fuzzyHit(tok, pc.Name); ok && sim > bestSim {
				best, bestSim = pc, sim
			}
		}
	}
	return best, bestSim > 0
}

// fuzzyHit reports whether tok is a plausible misspelling of name. The first
// letter must agree ("fellow" is not "yellow").
func fuzzyHit(tok, name string) (float64, bool) {
	t, _ := utf8.DecodeRuneInString(tok)
	n, _ := utf8.DecodeRuneInString(name)
	if t != n {
		return 0, false
	}
	sim := similarity(tok, name)
	return sim, sim >= fuzzyCutoff
}

func resolveCatalogColor(hit paletteColor, catalogColors []string) string {
	type candidate struct {
		raw  string
		norm string
	}
	cands := make([]candidate, 0, len(catalogColors))
	for _, c := range catalogColors {
		if n := normalize(c); n != "" {
			cands = append(cands, candidate{raw: c, norm: n})
		}
	}

	for _, want := range []string{hit.Name, hit.Family} {
		for _, c := range cands {
			if c.norm == want {
				return c.raw
			}
		}
		bestIdx, bestSim := -1, 0.0
		for i, c := range cands {
			if sim := similarity(c.norm, want); sim >= fuzzyCutoff && sim > bestSim {
				bestIdx, bestSim = i, sim
			}
		}
		if bestIdx >= 0 {
			return cands[bestIdx].raw
		}
		for _, c := range cands {
			if slices.Contains(strings.Fields(c.norm), want) {
				return c.raw
			}
		}
	}
	return ""
}

// similarity is 1 - levenshtein(a, b) / max rune length, in [0, 1].
func similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// normalize lowercases s, turns punctuation into spaces and collapses runs of
// whitespace.
func normalize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}
