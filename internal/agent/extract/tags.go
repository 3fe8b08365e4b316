package extract

import "strings"

// tagKeywords maps each tag to the substrings that trigger it, in output order.
var tagKeywords = []struct {
	tag      string
	keywords []string
}{
	{"wedding", []string{"wedding"}},
	{"midi", []string{"midi"}},
	{"party", []string{"party"}},
	{"daywear", []string{"daywear", "day"}},
}

// Tags returns the vocabulary tags whose keyword appears anywhere in the
// lowercased text.
func Tags(text string) []string {
	lower := strings.ToLower(text)
	tags := []string{}
	for _, tk := range tagKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, tk.tag)
				break
			}
		}
	}
	return tags
}
