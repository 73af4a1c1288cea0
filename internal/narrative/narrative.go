// Package narrative implements the human-readable notes format used to store
// and recover analysis fields when structured JSON is unavailable. Records
// written by older app versions only carry this format, so decoding must
// accept partially malformed text and never fail.
package narrative

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Section labels. Encode emits them in this order; Decode matches on them.
const (
	labelSummary      = "Summary: "
	labelProcessing   = "Processing Level: "
	labelNaturalPct   = "Approximately "
	labelIngredients  = "Ingredient Details:"
	labelAdditives    = "Additives of Concern:"
	labelAlternatives = "Healthier Alternatives:"
	labelLanguage     = "Detected Language: "

	concernMarker = " - CONCERN: "
	reasonMarker  = "Reason: "
)

// IngredientDetail is one explained ingredient entry.
type IngredientDetail struct {
	Name          string
	Explanation   string
	ConcernLevel  string
	ConcernReason string
}

// AdditiveDetail is one concerning-additive entry.
type AdditiveDetail struct {
	Name         string
	Explanation  string
	ConcernLevel string
}

// Fields is the set of analysis values the narrative format can carry.
type Fields struct {
	Summary         string
	ProcessingLevel string
	NaturalPercent  *int
	Ingredients     []IngredientDetail
	Additives       []AdditiveDetail
	Alternatives    []string
	Language        string
}

// Encode renders the fields as labeled sections joined by blank lines.
// Sections with no source value are omitted entirely.
func Encode(f Fields) string {
	var sections []string

	if f.Summary != "" {
		sections = append(sections, labelSummary+f.Summary)
	}
	if f.ProcessingLevel != "" {
		sections = append(sections, labelProcessing+titleCase(f.ProcessingLevel))
	}
	if f.NaturalPercent != nil {
		sections = append(sections, fmt.Sprintf("Approximately %d%% natural ingredients", *f.NaturalPercent))
	}
	if len(f.Ingredients) > 0 {
		items := make([]string, 0, len(f.Ingredients))
		for _, ing := range f.Ingredients {
			items = append(items, encodeIngredient(ing))
		}
		sections = append(sections, labelIngredients+"\n"+strings.Join(items, "\n\n"))
	}
	if len(f.Additives) > 0 {
		items := make([]string, 0, len(f.Additives))
		for _, add := range f.Additives {
			items = append(items, fmt.Sprintf("%s (CONCERN: %s): %s",
				add.Name, strings.ToUpper(add.ConcernLevel), add.Explanation))
		}
		sections = append(sections, labelAdditives+"\n"+strings.Join(items, "\n\n"))
	}
	if len(f.Alternatives) > 0 {
		lines := make([]string, 0, len(f.Alternatives))
		for _, alt := range f.Alternatives {
			lines = append(lines, "- "+alt)
		}
		sections = append(sections, labelAlternatives+"\n"+strings.Join(lines, "\n"))
	}
	if f.Language != "" {
		sections = append(sections, labelLanguage+f.Language)
	}

	return strings.Join(sections, "\n\n")
}

func encodeIngredient(ing IngredientDetail) string {
	entry := ing.Name
	if ing.ConcernLevel != "" && !strings.EqualFold(ing.ConcernLevel, "none") {
		entry += concernMarker + strings.ToUpper(ing.ConcernLevel)
	}
	entry += ": " + ing.Explanation
	if ing.ConcernReason != "" {
		entry += "\n" + reasonMarker + ing.ConcernReason
	}
	return entry
}

var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

// Decode parses narrative text back into fields. Chunks carrying a known
// label open a section; unlabeled chunks are treated as additional items of
// the list section currently open, which tolerates the blank-line item
// separators inside the ingredient and additive sections. A single
// unparseable item is skipped; Decode itself never fails.
func Decode(text string) Fields {
	var f Fields

	current := ""
	for _, chunk := range blankLine.Split(text, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		switch {
		case strings.HasPrefix(chunk, labelSummary):
			f.Summary = strings.TrimSpace(strings.TrimPrefix(chunk, labelSummary))
			current = ""
		case strings.HasPrefix(chunk, labelProcessing):
			f.ProcessingLevel = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(chunk, labelProcessing)))
			current = ""
		case strings.HasPrefix(chunk, labelNaturalPct):
			if pct, ok := parseNaturalPercent(chunk); ok {
				f.NaturalPercent = &pct
			}
			current = ""
		case strings.HasPrefix(chunk, labelIngredients):
			current = labelIngredients
			rest := strings.TrimSpace(strings.TrimPrefix(chunk, labelIngredients))
			if rest != "" {
				f.appendIngredients(rest)
			}
		case strings.HasPrefix(chunk, labelAdditives):
			current = labelAdditives
			rest := strings.TrimSpace(strings.TrimPrefix(chunk, labelAdditives))
			if rest != "" {
				f.appendAdditives(rest)
			}
		case strings.HasPrefix(chunk, labelAlternatives):
			current = ""
			rest := strings.TrimSpace(strings.TrimPrefix(chunk, labelAlternatives))
			f.Alternatives = append(f.Alternatives, parseAlternatives(rest)...)
		case strings.HasPrefix(chunk, labelLanguage):
			f.Language = strings.TrimSpace(strings.TrimPrefix(chunk, labelLanguage))
			current = ""
		default:
			// Continuation of the open list section, or noise to skip.
			switch current {
			case labelIngredients:
				f.appendIngredients(chunk)
			case labelAdditives:
				f.appendAdditives(chunk)
			}
		}
	}

	return f
}

func (f *Fields) appendIngredients(block string) {
	for _, item := range splitItems(block) {
		if ing, ok := parseIngredient(item); ok {
			f.Ingredients = append(f.Ingredients, ing)
		}
	}
}

func (f *Fields) appendAdditives(block string) {
	for _, item := range splitItems(block) {
		if add, ok := parseAdditive(item); ok {
			f.Additives = append(f.Additives, add)
		}
	}
}

// splitItems separates double-newline delimited entries inside a section block.
func splitItems(block string) []string {
	var items []string
	for _, item := range blankLine.Split(block, -1) {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseIngredient(item string) (IngredientDetail, bool) {
	var ing IngredientDetail

	// Peel off a trailing reason line first so it cannot confuse the
	// name/explanation split.
	if idx := strings.Index(item, "\n"+reasonMarker); idx >= 0 {
		ing.ConcernReason = strings.TrimSpace(item[idx+1+len(reasonMarker):])
		item = item[:idx]
	}

	if idx := strings.Index(item, concernMarker); idx >= 0 {
		ing.Name = strings.TrimSpace(item[:idx])
		rest := item[idx+len(concernMarker):]
		colon := strings.Index(rest, ":")
		if colon < 0 {
			return IngredientDetail{}, false
		}
		ing.ConcernLevel = strings.ToLower(strings.TrimSpace(rest[:colon]))
		ing.Explanation = strings.TrimSpace(rest[colon+1:])
	} else {
		colon := strings.Index(item, ":")
		if colon < 0 {
			return IngredientDetail{}, false
		}
		ing.Name = strings.TrimSpace(item[:colon])
		ing.Explanation = strings.TrimSpace(item[colon+1:])
	}

	if ing.Name == "" {
		return IngredientDetail{}, false
	}
	return ing, true
}

var additivePattern = regexp.MustCompile(`(?s)^(.+?)\s*\(CONCERN:\s*([A-Za-z]+)\)\s*:\s*(.+)$`)

func parseAdditive(item string) (AdditiveDetail, bool) {
	m := additivePattern.FindStringSubmatch(item)
	if m == nil {
		return AdditiveDetail{}, false
	}
	return AdditiveDetail{
		Name:         strings.TrimSpace(m[1]),
		ConcernLevel: strings.ToLower(m[2]),
		Explanation:  strings.TrimSpace(m[3]),
	}, true
}

func parseNaturalPercent(chunk string) (int, bool) {
	rest := strings.TrimPrefix(chunk, labelNaturalPct)
	end := strings.Index(rest, "%")
	if end < 0 {
		return 0, false
	}
	pct, err := strconv.Atoi(strings.TrimSpace(rest[:end]))
	if err != nil {
		return 0, false
	}
	return pct, true
}

func parseAlternatives(block string) []string {
	var alts []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line != "" {
			alts = append(alts, line)
		}
	}
	return alts
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 && r[0] >= 'a' && r[0] <= 'z' {
			r[0] -= 'a' - 'A'
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
