// Package advisory holds the size and shipping heuristics. Both are fixed
// decision tables, not lookups against external data.
package advisory

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

type (
	Height string
	Build  string
	Fit    string
)

const (
	HeightTall    Height = "tall"
	HeightShort   Height = "short"
	HeightAverage Height = "average"

	BuildSlim    Build = "slim"
	BuildMedium  Build = "medium"
	BuildLarge   Build = "large"
	BuildAverage Build = "average"

	FitLoose   Fit = "loose"
	FitTight   Fit = "tight"
	FitRegular Fit = "regular"
)

// Keyword lists are checked in order; the first signal found wins.
var (
	heightWords = []struct {
		h     Height
		words []string
	}{
		{HeightTall, []string{"tall"}},
		{HeightShort, []string{"short", "petite"}},
	}
	buildWords = []struct {
		b     Build
		words []string
	}{
		{BuildSlim, []string{"slim", "thin", "skinny"}},
		{BuildMedium, []string{"medium"}},
		{BuildLarge, []string{"large", "curvy", "plus"}},
	}
	fitWords = []struct {
		f     Fit
		words []string
	}{
		{FitLoose, []string{"loose", "looser", "relaxed", "oversized"}},
		{FitTight, []string{"tight", "tighter", "fitted", "snug"}},
	}
)

// sizeTable maps a build to its base size and its loose-fit size.
var sizeTable = map[Build][2]string{
	BuildSlim:    {"S", "M"},
	BuildMedium:  {"M", "L"},
	BuildAverage: {"M", "L"},
	BuildLarge:   {"L", "XL"},
}

// SizeAdvice is the outcome of RecommendSize.
type SizeAdvice struct {
	Height  Height `json:"height"`
	Build   Build  `json:"build"`
	Fit     Fit    `json:"fit"`
	Size    string `json:"size"`
	Message string `json:"message"`
}

// RecommendSize derives height, build and fit from keywords in text and maps
// them to a size.
func RecommendSize(text string) SizeAdvice {
	words := tokens(text)

	adv := SizeAdvice{Height: HeightAverage, Build: BuildAverage, Fit: FitRegular}
	for _, hw := range heightWords {
		if containsAny(words, hw.words) {
			adv.Height = hw.h
			break
		}
	}
	for _, bw := range buildWords {
		if containsAny(words, bw.words) {
			adv.Build = bw.b
			break
		}
	}
	for _, fw := range fitWords {
		if containsAny(words, fw.words) {
			adv.Fit = fw.f
			break
		}
	}

	row := sizeTable[adv.Build]
	base := row[0]
	if adv.Fit == FitLoose {
		base = row[1]
	}
	adv.Size = withHeight(base, adv.Height)

	msg := fmt.Sprintf("We recommend size %s for %s %s build with a %s fit", adv.Size, article(string(adv.Build)), adv.Build, adv.Fit)
	if adv.Fit != FitLoose {
		msg += fmt.Sprintf(", or %s if you prefer a looser fit", withHeight(row[1], adv.Height))
	}
	adv.Message = msg + "."
	return adv
}

func withHeight(size string, h Height) string {
	if h == HeightTall && size != "XL" {
		return size + "-Tall"
	}
	return size
}

func article(word string) string {
	if word != "" && strings.ContainsRune("aeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}

func tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func containsAny(words, want []string) bool {
	for _, w := range want {
		if slices.Contains(words, w) {
			return true
		}
	}
	return false
}
